// Package handler provides HTTP handlers for leaderboard endpoints.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	leaderboardModel "github.com/festy23/pitmstr/internal/leaderboard/model"
	"github.com/festy23/pitmstr/internal/leaderboard/service"
	"github.com/festy23/pitmstr/internal/response"
)

// Handler handles HTTP requests for leaderboard endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new leaderboard handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Get handles GET /api/leaderboard?eventId=&category=.
func (h *Handler) Get(c *gin.Context) {
	eventID := c.Query("eventId")
	if eventID == "" {
		response.BadRequest(c, "Event ID is required")
		return
	}

	result, err := h.service.Compute(c.Request.Context(), eventID, c.DefaultQuery("category", leaderboardModel.CategoryOverall))
	if err != nil {
		if errors.Is(err, leaderboardModel.ErrEventNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Errorw("error computing leaderboard", "event_id", eventID, "error", err)
		response.Internal(c, "Failed to fetch leaderboard")
		return
	}
	response.OK(c, result)
}
