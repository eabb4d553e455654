// Package pipeline orchestrates one monitoring run: fetch source listings,
// extract article stubs, classify candidates, and persist accepted incidents.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/Redoy0/political-violence-monitor/internal/classify"
	"github.com/Redoy0/political-violence-monitor/internal/config"
	"github.com/Redoy0/political-violence-monitor/internal/dedup"
	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/extract"
	"github.com/Redoy0/political-violence-monitor/internal/fetch"
	"github.com/Redoy0/political-violence-monitor/internal/geo"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
	"github.com/Redoy0/political-violence-monitor/internal/metrics"
	"github.com/Redoy0/political-violence-monitor/internal/policy"
	"github.com/Redoy0/political-violence-monitor/internal/sources"
)

// IncidentStore persists accepted incidents and serves the dedup window.
type IncidentStore interface {
	Create(ctx context.Context, incident *domain.Incident) error
	FindByLocationSince(ctx context.Context, location string, since time.Time) ([]domain.Incident, error)
}

// Pipeline runs the full ingestion flow for a set of sources. Sources are
// processed sequentially; a failure in one source never aborts the run.
type Pipeline struct {
	registry   *sources.Registry
	fetcher    *fetch.Fetcher
	extractor  *extract.Extractor
	classifier *classify.Classifier
	dedup      *dedup.Deduplicator
	store      IncidentStore
	metrics    *metrics.Metrics
	logger     logger.Interface
	cfg        config.CrawlerConfig

	sourceLimiter  *rate.Limiter
	articleLimiter *rate.Limiter
}

// New assembles a pipeline from its collaborators.
func New(
	registry *sources.Registry,
	fetcher *fetch.Fetcher,
	extractor *extract.Extractor,
	classifier *classify.Classifier,
	deduplicator *dedup.Deduplicator,
	store IncidentStore,
	m *metrics.Metrics,
	cfg config.CrawlerConfig,
	log logger.Interface,
) *Pipeline {
	classifier.SetFallbackCounter(m.FallbacksEngaged)

	return &Pipeline{
		registry:       registry,
		fetcher:        fetcher,
		extractor:      extractor,
		classifier:     classifier,
		dedup:          deduplicator,
		store:          store,
		metrics:        m,
		logger:         log.WithComponent("pipeline"),
		cfg:            cfg,
		sourceLimiter:  newLimiter(cfg.SourceDelay),
		articleLimiter: newLimiter(cfg.ArticleDelay),
	}
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Run processes every resolved source and returns a summary of the run.
// When override is non-empty it replaces the configured source list.
// Run fails outright only when no sources can be resolved or the context
// is cancelled; all other failures are recorded in the result.
func (p *Pipeline) Run(ctx context.Context, override []domain.Source) (*domain.RunResult, error) {
	list, err := p.registry.Resolve(ctx, override)
	if err != nil {
		return nil, fmt.Errorf("resolving sources: %w", err)
	}

	result := &domain.RunResult{}
	start := time.Now()

	p.logger.Info("starting monitoring run", "sources", len(list))

	for _, source := range list {
		if err := p.sourceLimiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("waiting between sources: %w", err)
		}
		p.processSource(ctx, source, result)
		result.ProcessedSources = append(result.ProcessedSources, source.Name)
	}

	p.logger.Info("monitoring run finished",
		"total_articles", result.TotalArticles,
		"incidents_created", result.IncidentsCreated,
		"errors", len(result.Errors),
		"duration", time.Since(start).String())

	return result, nil
}

// processSource handles a single source. A listing fetch or parse failure
// is fatal to the source only; article failures are recorded per article.
func (p *Pipeline) processSource(ctx context.Context, source domain.Source, result *domain.RunResult) {
	log := p.logger.With("source", source.Name)

	listing, err := p.fetcher.Fetch(ctx, source.URL, p.cfg.ListingTimeout)
	if err != nil {
		p.metrics.SourceErrors.Inc()
		result.Errors = append(result.Errors, fmt.Sprintf("%s: listing fetch: %v", source.Name, err))
		log.Error("listing fetch failed", "error", err)
		return
	}

	stubs, err := p.extractor.Stubs(source, listing)
	if err != nil {
		p.metrics.SourceErrors.Inc()
		result.Errors = append(result.Errors, fmt.Sprintf("%s: extracting stubs: %v", source.Name, err))
		log.Error("stub extraction failed", "error", err)
		return
	}

	if limit := p.cfg.MaxArticlesPerSource; limit > 0 && len(stubs) > limit {
		stubs = stubs[:limit]
	}

	log.Info("processing articles", "count", len(stubs))

	for _, stub := range stubs {
		if err := p.articleLimiter.Wait(ctx); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: waiting between articles: %v", source.Name, err))
			return
		}
		if err := p.processArticle(ctx, source, stub, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s: %v", source.Name, stub.Link, err))
		}
	}
}

// processArticle runs one stub through content fetch, classification, the
// acceptance policy, dedup, and persistence. Content fetch failure degrades
// to classifying the title alone rather than skipping the article.
func (p *Pipeline) processArticle(ctx context.Context, source domain.Source, stub domain.ArticleStub, result *domain.RunResult) error {
	result.TotalArticles++
	p.metrics.ArticlesProcessed.Inc()

	content := stub.Title
	body, err := p.fetcher.Fetch(ctx, stub.Link, p.cfg.ArticleTimeout)
	if err != nil {
		p.logger.Warn("article fetch failed, classifying title only",
			"url", stub.Link, "error", err)
	} else {
		content = p.extractor.Content(source, body, stub.Title)
	}

	classification := p.classifier.Classify(ctx, stub.Title, content)

	decision := policy.Evaluate(classification)
	if !decision.Accepted {
		p.metrics.ArticlesFiltered.Inc()
		p.logger.Debug("article filtered", "url", stub.Link, "reason", decision.Reason)
		return nil
	}

	duplicate, err := p.dedup.IsDuplicate(ctx, stub.Title, classification.Location)
	if err != nil {
		return fmt.Errorf("checking duplicates: %w", err)
	}
	if duplicate {
		p.metrics.DuplicatesSkipped.Inc()
		p.logger.Debug("duplicate skipped", "url", stub.Link, "location", classification.Location)
		return nil
	}

	incident := buildIncident(stub, classification)
	if err := p.store.Create(ctx, incident); err != nil {
		return fmt.Errorf("creating incident: %w", err)
	}

	result.IncidentsCreated++
	p.metrics.IncidentsCreated.Inc()
	p.logger.Info("incident created",
		"title", incident.Title,
		"location", incident.Location,
		"party", incident.PoliticalParty,
		"severity", string(incident.Severity))

	return nil
}

// Publication date layouts seen across the monitored outlets.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006",
	"January 2, 2006",
}

func buildIncident(stub domain.ArticleStub, c domain.Classification) *domain.Incident {
	coords := geo.DefaultCoordinates
	if c.Coordinates != nil {
		coords = *c.Coordinates
	}

	return &domain.Incident{
		Title:          stub.Title,
		Location:       c.Location,
		Latitude:       coords.Latitude,
		Longitude:      coords.Longitude,
		Injured:        c.Casualties.Injured,
		Killed:         c.Casualties.Killed,
		PoliticalParty: c.PoliticalParty,
		Role:           c.Role,
		Date:           parseDate(stub.Date),
		Severity:       c.Severity,
		Description:    c.Description,
		SourceURL:      stub.Link,
		Images:         domain.StringArray(c.Images),
	}
}

// parseDate tries the known listing date layouts and falls back to the
// current time when none match.
func parseDate(raw string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
