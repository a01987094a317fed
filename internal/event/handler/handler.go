// Package handler provides HTTP handlers for event endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	eventModel "github.com/festy23/pitmstr/internal/event/model"
	"github.com/festy23/pitmstr/internal/event/service"
	"github.com/festy23/pitmstr/internal/response"
)

// Handler handles HTTP requests for event endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new event handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// List handles GET /api/events.
func (h *Handler) List(c *gin.Context) {
	filter := eventModel.ListFilter{
		Status:   eventModel.Status(c.Query("status")),
		Division: c.Query("division"),
		State:    c.Query("state"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "limit must be a number")
			return
		}
		filter.Limit = limit
	}

	events, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, eventModel.ErrInvalidStatus) {
			response.BadRequest(c, "status must be one of: upcoming, live, completed")
			return
		}
		h.logger.Errorw("error listing events", "error", err)
		response.Internal(c, "Failed to fetch events")
		return
	}

	response.OK(c, events)
}

// Get handles GET /api/events/:id.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, eventModel.ErrEventNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Errorw("error getting event", "event_id", id, "error", err)
		response.Internal(c, "Failed to fetch event")
		return
	}

	response.OK(c, event)
}

// Create handles POST /api/events.
func (h *Handler) Create(c *gin.Context) {
	var req eventModel.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	event, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, eventModel.ErrInvalidEvent) {
			response.BadRequest(c, err.Error())
			return
		}
		h.logger.Errorw("error creating event", "error", err)
		response.Internal(c, "Failed to create event")
		return
	}

	response.Created(c, event)
}

// Delete handles DELETE /api/events?id=.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, "Event ID is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, eventModel.ErrEventNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		h.logger.Errorw("error deleting event", "event_id", id, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	response.Message(c, "Event deleted successfully")
}
