package dedup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redoy0/political-violence-monitor/internal/dedup"
	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

type fakeStore struct {
	incidents []domain.Incident
	err       error

	gotLocation string
	gotSince    time.Time
}

func (f *fakeStore) FindByLocationSince(_ context.Context, location string, since time.Time) ([]domain.Incident, error) {
	f.gotLocation = location
	f.gotSince = since
	return f.incidents, f.err
}

func TestSimilarity_IdenticalTitles(t *testing.T) {
	title := "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় ৫ জন আহত"
	assert.InDelta(t, 1.0, dedup.Similarity(title, title), 1e-9)
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় ৫ জন আহত"
	b := "চট্টগ্রামে বিএনপির কর্মীদের সংঘর্ষে আহত ৩"
	assert.InDelta(t, dedup.Similarity(a, b), dedup.Similarity(b, a), 1e-9)
}

func TestSimilarity_DisjointTitles(t *testing.T) {
	a := "ঢাকায় হরতাল"
	b := "চট্টগ্রামে সমাবেশ অনুষ্ঠিত"
	assert.Zero(t, dedup.Similarity(a, b))
}

func TestSimilarity_EmptyTitles(t *testing.T) {
	assert.Zero(t, dedup.Similarity("", ""))
	assert.Zero(t, dedup.Similarity("ঢাকায় সংঘর্ষ", ""))
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	assert.InDelta(t, 1.0, dedup.Similarity("BNP Clash in Dhaka", "bnp clash in dhaka"), 1e-9)
}

func TestIsDuplicate_EmptyWindow(t *testing.T) {
	store := &fakeStore{}
	d := dedup.New(store, logger.NewNoOp())

	dup, err := d.IsDuplicate(context.Background(), "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় ৫ জন আহত", "ঢাকা")
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, "ঢাকা", store.gotLocation)

	// The comparison window trails the current time.
	wantSince := time.Now().Add(-dedup.Window)
	assert.WithinDuration(t, wantSince, store.gotSince, time.Minute)
}

func TestIsDuplicate_SimilarTitleInWindow(t *testing.T) {
	store := &fakeStore{
		incidents: []domain.Incident{
			{Title: "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় ৫ জন আহত", Location: "ঢাকা"},
		},
	}
	d := dedup.New(store, logger.NewNoOp())

	// Same event reworded: shares 7 of 8 tokens.
	dup, err := d.IsDuplicate(context.Background(), "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় আহত ৫", "ঢাকা")
	require.NoError(t, err)
	assert.True(t, dup)
}

func TestIsDuplicate_DissimilarTitle(t *testing.T) {
	store := &fakeStore{
		incidents: []domain.Incident{
			{Title: "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় ৫ জন আহত", Location: "ঢাকা"},
		},
	}
	d := dedup.New(store, logger.NewNoOp())

	dup, err := d.IsDuplicate(context.Background(), "ঢাকায় ছাত্রদের বিক্ষোভ মিছিল অনুষ্ঠিত", "ঢাকা")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestIsDuplicate_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	d := dedup.New(store, logger.NewNoOp())

	_, err := d.IsDuplicate(context.Background(), "ঢাকায় সংঘর্ষ", "ঢাকা")
	assert.Error(t, err)
}

func TestIsCleanupPair(t *testing.T) {
	base := time.Date(2024, 8, 5, 12, 0, 0, 0, time.UTC)
	a := &domain.Incident{
		Title:    "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় ৫ জন আহত",
		Location: "ঢাকা",
		Date:     base,
	}

	t.Run("same location close dates similar titles", func(t *testing.T) {
		b := &domain.Incident{
			Title:    "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় আহত ৫",
			Location: "ঢাকা",
			Date:     base.Add(20 * time.Hour),
		}
		assert.True(t, dedup.IsCleanupPair(a, b))
		assert.True(t, dedup.IsCleanupPair(b, a))
	})

	t.Run("dates too far apart", func(t *testing.T) {
		b := &domain.Incident{
			Title:    "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় আহত ৫",
			Location: "ঢাকা",
			Date:     base.Add(3 * 24 * time.Hour),
		}
		assert.False(t, dedup.IsCleanupPair(a, b))
	})

	t.Run("different locations", func(t *testing.T) {
		b := &domain.Incident{
			Title:    "ঢাকায় আওয়ামী লীগ কর্মীদের হামলায় আহত ৫",
			Location: "চট্টগ্রাম",
			Date:     base,
		}
		assert.False(t, dedup.IsCleanupPair(a, b))
	})

	t.Run("dissimilar titles", func(t *testing.T) {
		b := &domain.Incident{
			Title:    "ঢাকায় ছাত্রদের বিক্ষোভ মিছিল অনুষ্ঠিত",
			Location: "ঢাকা",
			Date:     base,
		}
		assert.False(t, dedup.IsCleanupPair(a, b))
	})
}
