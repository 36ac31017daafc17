package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-service/pkg/logger"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and health endpoints
type HealthHandler struct {
	store   Pinger
	service string
	version string
	log     *zap.Logger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(store Pinger, service, version string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		service: service,
		version: version,
		log:     log,
	}
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "alive 💪")
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "healthy", http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		logger.WithContext(ctx, h.log).Warn("store ping failed", zap.Error(err))
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": h.service,
		"version": h.version,
	})
}
