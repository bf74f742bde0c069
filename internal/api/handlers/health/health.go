package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-ingest/internal/core/batch"
	"recipe-ingest/internal/core/cache"
	"recipe-ingest/internal/core/category"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Version    string                 `json:"version"`
	Runtime    map[string]interface{} `json:"runtime"`
	Dictionary int                    `json:"dictionary_entries"`
	Cache      cache.Stats            `json:"cache"`
	Queue      *batch.Status          `json:"queue,omitempty"`
}

// Handler reports service health.
type Handler struct {
	cfg         *config.Config
	store       cache.Store
	pool        *batch.Pool
	categorizer *category.Categorizer
}

// NewHandler creates a health handler. store and pool may be nil.
func NewHandler(cfg *config.Config, store cache.Store, pool *batch.Pool, categorizer *category.Categorizer) *Handler {
	if store == nil {
		store = cache.Disabled{}
	}
	return &Handler{cfg: cfg, store: store, pool: pool, categorizer: categorizer}
}

// HealthCheck reports runtime, cache and worker pool state.
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Cache: h.store.Stats(),
	}
	if h.categorizer != nil {
		response.Dictionary = h.categorizer.Dictionary().Len()
	}
	if h.pool != nil {
		status := h.pool.Status()
		response.Queue = &status
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck fails until an ingredient dictionary is loaded.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.categorizer == nil || h.categorizer.Dictionary().Len() == 0 {
		common.WriteError(c, common.ErrServiceUnavailable, false)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck always answers while the process is serving.
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
