package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// IncidentStore reads persisted incidents for the API.
type IncidentStore interface {
	ListAll(ctx context.Context) ([]domain.Incident, error)
	Count(ctx context.Context) (int, error)
}

// Runner triggers a monitoring run. Satisfied by pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, override []domain.Source) (*domain.RunResult, error)
}

// IncidentHandler serves incident queries and scrape triggers.
type IncidentHandler struct {
	store  IncidentStore
	runner Runner
	logger logger.Interface

	mu      sync.Mutex
	running bool
}

// NewIncidentHandler creates the handler around its collaborators.
func NewIncidentHandler(store IncidentStore, runner Runner, log logger.Interface) *IncidentHandler {
	return &IncidentHandler{
		store:  store,
		runner: runner,
		logger: log,
	}
}

// Health reports service liveness.
func (h *IncidentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// List returns all persisted incidents, newest first.
func (h *IncidentHandler) List(c *gin.Context) {
	incidents, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list incidents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list incidents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(incidents),
		"incidents": incidents,
	})
}

// Scrape runs the pipeline synchronously and returns the run summary.
// Only one run may be in flight at a time; concurrent requests get 409.
func (h *IncidentHandler) Scrape(c *gin.Context) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a scrape run is already in progress"})
		return
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	result, err := h.runner.Run(c.Request.Context(), nil)
	if err != nil {
		h.logger.Error("Scrape run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Degraded() {
		h.logger.Warn("Scrape run completed with errors", "errors", len(result.Errors))
	}
	c.JSON(http.StatusOK, result)
}
