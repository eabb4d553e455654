package common

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Redoy0/political-violence-monitor/internal/classify"
	"github.com/Redoy0/political-violence-monitor/internal/database"
	"github.com/Redoy0/political-violence-monitor/internal/dedup"
	"github.com/Redoy0/political-violence-monitor/internal/extract"
	"github.com/Redoy0/political-violence-monitor/internal/fetch"
	"github.com/Redoy0/political-violence-monitor/internal/metrics"
	"github.com/Redoy0/political-violence-monitor/internal/pipeline"
	"github.com/Redoy0/political-violence-monitor/internal/sources"
)

// Monitor bundles the wired pipeline with the resources behind it.
type Monitor struct {
	Pipeline  *pipeline.Pipeline
	Incidents *database.IncidentRepository
	Sources   *database.SourceRepository
	Registry  *sources.Registry
	Metrics   *metrics.Metrics
	DB        *sqlx.DB
}

// Close releases the monitor's database handle.
func (m *Monitor) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// NewMonitor wires the full ingestion pipeline from configuration.
// Metrics are registered on the given registerer.
func NewMonitor(deps *Deps, reg prometheus.Registerer) (*Monitor, error) {
	db, err := database.Connect(deps.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	incidents := database.NewIncidentRepository(db)
	sourceRepo := database.NewSourceRepository(db)

	var store sources.Store
	if deps.Config.Sources.FromStore {
		store = sourceRepo
	}
	registry := sources.NewRegistry(store, deps.Config.Sources.File, deps.Logger)

	aiClient := classify.NewOpenAIClient(classify.OpenAIConfig{
		BaseURL:     deps.Config.AI.BaseURL,
		APIKey:      deps.Config.AI.APIKey,
		Model:       deps.Config.AI.Model,
		Temperature: deps.Config.AI.Temperature,
		MaxTokens:   deps.Config.AI.MaxTokens,
		Timeout:     deps.Config.AI.Timeout,
	})

	m := metrics.New(reg)

	pipe := pipeline.New(
		registry,
		fetch.New(deps.Config.Crawler.UserAgent, deps.Logger),
		extract.New(deps.Logger),
		classify.New(aiClient, deps.Logger),
		dedup.New(incidents, deps.Logger),
		incidents,
		m,
		deps.Config.Crawler,
		deps.Logger,
	)

	return &Monitor{
		Pipeline:  pipe,
		Incidents: incidents,
		Sources:   sourceRepo,
		Registry:  registry,
		Metrics:   m,
		DB:        db,
	}, nil
}
