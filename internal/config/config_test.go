package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redoy0/political-violence-monitor/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// An explicit missing file path would be an error; no path at all
	// falls back to defaults.
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
	_ = cfg

	cfg, err = loadFromDir(t, "")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Crawler.ListingTimeout)
	assert.Equal(t, 8*time.Second, cfg.Crawler.ArticleTimeout)
	assert.Equal(t, 20, cfg.Crawler.MaxArticlesPerSource)
	assert.Equal(t, 2*time.Second, cfg.Crawler.SourceDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Crawler.ArticleDelay)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0 6 * * *", cfg.Scheduler.Schedule)
	assert.Equal(t, "Asia/Dhaka", cfg.Scheduler.Timezone)
	assert.True(t, cfg.Sources.FromStore)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := loadFromDir(t, `
database:
  host: db.internal
  port: 5433
crawler:
  max_articles_per_source: 5
  source_delay: 4s
scheduler:
  schedule: "30 5 * * *"
`)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 5, cfg.Crawler.MaxArticlesPerSource)
	assert.Equal(t, 4*time.Second, cfg.Crawler.SourceDelay)
	assert.Equal(t, "30 5 * * *", cfg.Scheduler.Schedule)

	// Untouched sections keep their defaults.
	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.Model)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("MONITOR_DATABASE_HOST", "env-host")
	t.Setenv("MONITOR_AI_API_KEY", "secret")

	cfg, err := loadFromDir(t, `
database:
  host: file-host
`)
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.AI.APIKey)
}

// loadFromDir writes an optional config file into a temp dir and loads it.
// An empty content loads pure defaults.
func loadFromDir(t *testing.T, content string) (*config.Config, error) {
	t.Helper()
	if content == "" {
		return config.Load("")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return config.Load(path)
}
