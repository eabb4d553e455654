package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redoy0/political-violence-monitor/internal/api"
	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

type fakeStore struct {
	incidents []domain.Incident
	err       error
}

func (f *fakeStore) ListAll(context.Context) ([]domain.Incident, error) {
	return f.incidents, f.err
}

func (f *fakeStore) Count(context.Context) (int, error) {
	return len(f.incidents), f.err
}

type fakeRunner struct {
	result *domain.RunResult
	err    error
	calls  int
}

func (f *fakeRunner) Run(context.Context, []domain.Source) (*domain.RunResult, error) {
	f.calls++
	return f.result, f.err
}

func newTestRouter(store *fakeStore, runner *fakeRunner) http.Handler {
	h := api.NewIncidentHandler(store, runner, logger.NewNoOp())
	return api.NewRouter(h, prometheus.NewRegistry(), logger.NewNoOp(), false)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListIncidents(t *testing.T) {
	store := &fakeStore{
		incidents: []domain.Incident{
			{
				ID:             "id-1",
				Title:          "ঢাকায় সংঘর্ষে আহত ৫",
				Location:       "ঢাকা",
				PoliticalParty: "বিএনপি",
				Role:           domain.RoleAggressor,
				Severity:       domain.SeverityHeavy,
			},
		},
	}
	router := newTestRouter(store, &fakeRunner{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/incidents", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count     int               `json:"count"`
		Incidents []domain.Incident `json:"incidents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Incidents, 1)
	assert.Equal(t, "ঢাকায় সংঘর্ষে আহত ৫", resp.Incidents[0].Title)
}

func TestListIncidents_StoreError(t *testing.T) {
	router := newTestRouter(&fakeStore{err: errors.New("db down")}, &fakeRunner{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/incidents", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestScrape_ReturnsRunSummary(t *testing.T) {
	runner := &fakeRunner{
		result: &domain.RunResult{
			TotalArticles:    12,
			IncidentsCreated: 2,
			ProcessedSources: []string{"Prothom Alo"},
		},
	}
	router := newTestRouter(&fakeStore{}, runner)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/scrape", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)

	var resp domain.RunResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.TotalArticles)
	assert.Equal(t, 2, resp.IncidentsCreated)
}

func TestScrape_RunError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("no sources resolved")}
	router := newTestRouter(&fakeStore{}, runner)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/scrape", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
