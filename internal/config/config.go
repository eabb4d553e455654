// Package config provides configuration management for the monitor.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	defaultEnvironment      = "development"
	defaultLogLevel         = "info"
	defaultLogEncoding      = "console"
	defaultDBHost           = "localhost"
	defaultDBPort           = 5432
	defaultDBUser           = "postgres"
	defaultDBName           = "violence_monitor"
	defaultDBSSLMode        = "disable"
	defaultAIBaseURL        = "https://api.openai.com"
	defaultAIModel          = "gpt-3.5-turbo"
	defaultAITemperature    = 0.3
	defaultAIMaxTokens      = 500
	defaultAITimeout        = 30 * time.Second
	defaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultListingTimeout   = 10 * time.Second
	defaultArticleTimeout   = 8 * time.Second
	defaultMaxArticles      = 20
	defaultSourceDelay      = 2 * time.Second
	defaultArticleDelay     = 500 * time.Millisecond
	defaultServerPort       = 8080
	defaultServerTimeout    = 30 * time.Second
	defaultCronSchedule     = "0 6 * * *"
	defaultCronTimezone     = "Asia/Dhaka"
	defaultSourcesFile      = "sources.yaml"
	defaultSourcesFromStore = true
)

// Config is the unified configuration for all commands.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
	AI        AIConfig        `mapstructure:"ai"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Server    ServerConfig    `mapstructure:"server"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Sources   SourcesConfig   `mapstructure:"sources"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AIConfig holds settings for the AI classification capability.
type AIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CrawlerConfig holds fetch and pacing settings for the pipeline.
type CrawlerConfig struct {
	UserAgent            string        `mapstructure:"user_agent"`
	ListingTimeout       time.Duration `mapstructure:"listing_timeout"`
	ArticleTimeout       time.Duration `mapstructure:"article_timeout"`
	MaxArticlesPerSource int           `mapstructure:"max_articles_per_source"`
	SourceDelay          time.Duration `mapstructure:"source_delay"`
	ArticleDelay         time.Duration `mapstructure:"article_delay"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SchedulerConfig holds cron settings for periodic runs.
type SchedulerConfig struct {
	Schedule string `mapstructure:"schedule"`
	Timezone string `mapstructure:"timezone"`
}

// SourcesConfig controls where the source registry is loaded from.
type SourcesConfig struct {
	// File is an optional YAML file overriding the built-in registry.
	File string `mapstructure:"file"`
	// FromStore enables loading enabled sources from the database first.
	FromStore bool `mapstructure:"from_store"`
}

// Load reads configuration from the given file (optional), the environment,
// and built-in defaults, in that order of precedence.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", defaultEnvironment)
	v.SetDefault("app.debug", false)
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.encoding", defaultLogEncoding)
	v.SetDefault("database.host", defaultDBHost)
	v.SetDefault("database.port", defaultDBPort)
	v.SetDefault("database.user", defaultDBUser)
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", defaultDBName)
	v.SetDefault("database.sslmode", defaultDBSSLMode)
	v.SetDefault("ai.base_url", defaultAIBaseURL)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", defaultAIModel)
	v.SetDefault("ai.temperature", defaultAITemperature)
	v.SetDefault("ai.max_tokens", defaultAIMaxTokens)
	v.SetDefault("ai.timeout", defaultAITimeout)
	v.SetDefault("crawler.user_agent", defaultUserAgent)
	v.SetDefault("crawler.listing_timeout", defaultListingTimeout)
	v.SetDefault("crawler.article_timeout", defaultArticleTimeout)
	v.SetDefault("crawler.max_articles_per_source", defaultMaxArticles)
	v.SetDefault("crawler.source_delay", defaultSourceDelay)
	v.SetDefault("crawler.article_delay", defaultArticleDelay)
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("scheduler.schedule", defaultCronSchedule)
	v.SetDefault("scheduler.timezone", defaultCronTimezone)
	v.SetDefault("sources.file", defaultSourcesFile)
	v.SetDefault("sources.from_store", defaultSourcesFromStore)
}
