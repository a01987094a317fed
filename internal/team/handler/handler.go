// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/response"
	teamModel "github.com/festy23/pitmstr/internal/team/model"
	"github.com/festy23/pitmstr/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Search handles GET /api/teams?q=.
func (h *Handler) Search(c *gin.Context) {
	teams, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Errorw("error searching teams", "error", err)
		response.Internal(c, "Failed to fetch teams")
		return
	}
	response.OK(c, teams)
}

// Get handles GET /api/teams/:id.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			response.NotFound(c, "Team not found")
			return
		}
		h.logger.Errorw("error getting team", "team_id", id, "error", err)
		response.Internal(c, "Failed to fetch team")
		return
	}
	response.OK(c, detail)
}

// Create handles POST /api/teams.
func (h *Handler) Create(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, teamModel.ErrInvalidTeam) {
			response.BadRequest(c, err.Error())
			return
		}
		h.logger.Errorw("error creating team", "error", err)
		response.Internal(c, "Failed to create team")
		return
	}
	response.OK(c, resp)
}

// Delete handles DELETE /api/teams?id=.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, "Team ID is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			response.NotFound(c, "Team not found")
			return
		}
		h.logger.Errorw("error deleting team", "team_id", id, "error", err)
		response.Internal(c, "Failed to delete team")
		return
	}
	response.Message(c, "Team deleted successfully")
}
