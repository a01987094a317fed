// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const checkTimeout = 5 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles health check requests.
type Handler struct {
	store  Pinger
	logger *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(store Pinger, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status    string `json:"status"`
	Datastore string `json:"datastore"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Status:    "unhealthy",
			Datastore: "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:    "ok",
		Datastore: "ok",
	})
}
