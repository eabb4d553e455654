package sources_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
	"github.com/Redoy0/political-violence-monitor/internal/sources"
)

type fakeStore struct {
	sources []domain.Source
	err     error
}

func (f *fakeStore) ListActive(context.Context) ([]domain.Source, error) {
	return f.sources, f.err
}

func validSource(name string) domain.Source {
	return domain.Source{
		Name: name,
		URL:  "https://example.com",
		Selectors: domain.SelectorConfig{
			Articles: ".item",
			Title:    "h2 a",
		},
		Enabled: true,
	}
}

func TestResolve_OverrideWinsOverEverything(t *testing.T) {
	store := &fakeStore{sources: []domain.Source{validSource("stored")}}
	r := sources.NewRegistry(store, "", logger.NewNoOp())

	override := []domain.Source{validSource("override")}
	got, err := r.Resolve(context.Background(), override)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "override", got[0].Name)
}

func TestResolve_InvalidOverrideRejected(t *testing.T) {
	r := sources.NewRegistry(nil, "", logger.NewNoOp())

	bad := validSource("bad")
	bad.Selectors.Articles = ""
	_, err := r.Resolve(context.Background(), []domain.Source{bad})
	assert.Error(t, err)
}

func TestResolve_StoreBeforeFileAndDefaults(t *testing.T) {
	store := &fakeStore{sources: []domain.Source{validSource("stored")}}
	r := sources.NewRegistry(store, "does-not-exist.yaml", logger.NewNoOp())

	got, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stored", got[0].Name)
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	r := sources.NewRegistry(store, "", logger.NewNoOp())

	_, err := r.Resolve(context.Background(), nil)
	assert.Error(t, err)
}

func TestResolve_EmptyStoreFallsThroughToFile(t *testing.T) {
	file := writeSourcesFile(t, `
sources:
  - name: From File
    url: https://file.example.com
    selectors:
      articles: ".news"
      title: "h3 a"
`)

	store := &fakeStore{}
	r := sources.NewRegistry(store, file, logger.NewNoOp())

	got, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "From File", got[0].Name)
	assert.True(t, got[0].Enabled)
}

func TestResolve_DefaultsWhenNothingElseConfigured(t *testing.T) {
	r := sources.NewRegistry(nil, "", logger.NewNoOp())

	got, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, sources.DefaultSources, got)
}

func TestResolve_MissingFileFallsThroughToDefaults(t *testing.T) {
	r := sources.NewRegistry(nil, "no-such-file.yaml", logger.NewNoOp())

	got, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, sources.DefaultSources, got)
}

func TestLoadFile_InvalidSourceRejected(t *testing.T) {
	file := writeSourcesFile(t, `
sources:
  - name: Broken
    url: https://broken.example.com
    selectors:
      title: "h3 a"
`)

	_, err := sources.LoadFile(file)
	assert.Error(t, err)
}

func TestDefaultSources_AllValidAndEnabled(t *testing.T) {
	require.NotEmpty(t, sources.DefaultSources)
	for i := range sources.DefaultSources {
		src := sources.DefaultSources[i]
		assert.NoError(t, src.Validate(), src.Name)
		assert.True(t, src.Enabled, src.Name)
	}
}

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
