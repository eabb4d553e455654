package domain

import (
	"errors"
	"time"
)

// Source represents a news source configuration.
type Source struct {
	ID        string         `json:"id" yaml:"-" db:"id"`
	Name      string         `json:"name" yaml:"name" db:"name"`
	URL       string         `json:"url" yaml:"url" db:"url"`
	Selectors SelectorConfig `json:"selectors" yaml:"selectors" db:"selectors"`
	Enabled   bool           `json:"enabled" yaml:"enabled" db:"enabled"`
	CreatedAt time.Time      `json:"created_at" yaml:"-" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"-" db:"updated_at"`
}

// SelectorConfig defines the CSS selectors used to extract articles from a
// source. Each field may hold a comma-separated selector group; alternatives
// are tried in document order, which keeps per-site quirks purely data-driven.
type SelectorConfig struct {
	// Articles selects the article container elements on the listing page.
	Articles string `json:"articles" yaml:"articles"`
	// Title selects the title element (usually an anchor) inside a container.
	Title string `json:"title" yaml:"title"`
	// Link selects the link element when the title element carries no href.
	Link string `json:"link" yaml:"link"`
	// Date selects the published-date element inside a container.
	Date string `json:"date,omitempty" yaml:"date"`
	// Content selects the article body on the article page. Generic
	// fallbacks are appended by the extractor when this yields nothing.
	Content string `json:"content,omitempty" yaml:"content"`
}

// Validate validates the source configuration.
func (s *Source) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.URL == "" {
		return errors.New("url is required")
	}
	if s.Selectors.Articles == "" {
		return errors.New("articles selector is required")
	}
	if s.Selectors.Title == "" {
		return errors.New("title selector is required")
	}
	return nil
}
