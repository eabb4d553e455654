// Package sources provides the news source registry.
package sources

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// Store lists persisted sources. Implemented by the database source repository.
type Store interface {
	ListActive(ctx context.Context) ([]domain.Source, error)
}

// Registry resolves the effective source list for a run.
// Resolution order: explicit override, enabled store sources, YAML file,
// built-in defaults. The first non-empty level wins.
type Registry struct {
	store  Store
	file   string
	logger logger.Interface
}

// NewRegistry creates a source registry. store and file are both optional.
func NewRegistry(store Store, file string, log logger.Interface) *Registry {
	return &Registry{store: store, file: file, logger: log}
}

// Resolve returns the sources to crawl. override takes precedence over
// every other level and is returned as-is after validation.
func (r *Registry) Resolve(ctx context.Context, override []domain.Source) ([]domain.Source, error) {
	if len(override) > 0 {
		if err := validateAll(override); err != nil {
			return nil, fmt.Errorf("override sources: %w", err)
		}
		return override, nil
	}

	if r.store != nil {
		stored, err := r.store.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active sources: %w", err)
		}
		if len(stored) > 0 {
			r.logger.Debug("using stored sources", "count", len(stored))
			return stored, nil
		}
	}

	if r.file != "" {
		fromFile, err := LoadFile(r.file)
		if err == nil && len(fromFile) > 0 {
			r.logger.Debug("using sources file", "file", r.file, "count", len(fromFile))
			return fromFile, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load sources file: %w", err)
		}
	}

	return DefaultSources, nil
}

// LoadFile reads a YAML source list from disk.
func LoadFile(path string) ([]domain.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Sources []domain.Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := validateAll(doc.Sources); err != nil {
		return nil, err
	}
	for i := range doc.Sources {
		doc.Sources[i].Enabled = true
	}
	return doc.Sources, nil
}

func validateAll(list []domain.Source) error {
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return fmt.Errorf("source %q: %w", list[i].Name, err)
		}
	}
	return nil
}
