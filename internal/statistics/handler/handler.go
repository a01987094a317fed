// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/response"
	"github.com/festy23/pitmstr/internal/statistics/model"
	"github.com/festy23/pitmstr/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetTotals handles GET /api/stats.
// Failures still answer 200 with zero counts so the landing page renders.
func (h *Handler) GetTotals(c *gin.Context) {
	totals, err := h.service.GetTotals(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting stats", "error", err)
		c.JSON(http.StatusOK, response.Envelope{
			Success: false,
			Error:   "Failed to fetch stats",
			Data:    model.Totals{},
		})
		return
	}
	response.OK(c, totals)
}
