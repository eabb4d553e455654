// Package dedup suppresses near-duplicate incidents by title similarity.
package dedup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// SimilarityThreshold is the shared-token ratio above which two titles
// are considered the same incident.
const SimilarityThreshold = 0.70

// Window is the trailing period of stored incidents a live candidate is
// compared against. Measured from now, not from the candidate's date: a
// deliberate recency bound on the comparison set.
const Window = 7 * 24 * time.Hour

// CleanupMaxDateDiff is the tighter date bound the offline sweep adds on
// top of the same similarity comparator.
const CleanupMaxDateDiff = 24 * time.Hour

// Store provides the recent-incident comparison window.
type Store interface {
	FindByLocationSince(ctx context.Context, location string, since time.Time) ([]domain.Incident, error)
}

// Deduplicator checks candidates against recently stored incidents.
type Deduplicator struct {
	store  Store
	logger logger.Interface
	now    func() time.Time
}

// New creates a deduplicator.
func New(store Store, log logger.Interface) *Deduplicator {
	return &Deduplicator{store: store, logger: log, now: time.Now}
}

// IsDuplicate reports whether a candidate titled title at location already
// has a near-duplicate among incidents stored there within the trailing
// window. The first similar incident short-circuits the scan.
func (d *Deduplicator) IsDuplicate(ctx context.Context, title, location string) (bool, error) {
	since := d.now().Add(-Window)
	existing, err := d.store.FindByLocationSince(ctx, location, since)
	if err != nil {
		return false, fmt.Errorf("query comparison window: %w", err)
	}

	for i := range existing {
		if sim := Similarity(existing[i].Title, title); sim > SimilarityThreshold {
			d.logger.Info("duplicate incident detected",
				"title", title, "existing", existing[i].Title, "similarity", sim)
			return true, nil
		}
	}
	return false, nil
}

// Similarity computes the shared-token ratio of two titles: tokens are
// whitespace-separated, lowercased, NFC-normalized and deduplicated into
// sets; the ratio is the intersection size over the larger set's size.
// Symmetric, and 1.0 for identical non-empty titles.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	maxLen := len(setA)
	if len(setB) > maxLen {
		maxLen = len(setB)
	}
	if maxLen == 0 {
		return 0
	}

	shared := 0
	for t := range setA {
		if setB[t] {
			shared++
		}
	}

	return float64(shared) / float64(maxLen)
}

// IsCleanupPair is the canonical comparator for the offline sweep: same
// location, dates within CleanupMaxDateDiff, and similarity above the same
// threshold live ingestion uses.
func IsCleanupPair(a, b *domain.Incident) bool {
	if a.Location != b.Location {
		return false
	}
	diff := a.Date.Sub(b.Date)
	if diff < 0 {
		diff = -diff
	}
	if diff > CleanupMaxDateDiff {
		return false
	}
	return Similarity(a.Title, b.Title) > SimilarityThreshold
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(norm.NFC.String(strings.ToLower(s)))
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
