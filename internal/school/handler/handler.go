// Package handler provides HTTP handlers for school endpoints.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/response"
	schoolModel "github.com/festy23/pitmstr/internal/school/model"
	"github.com/festy23/pitmstr/internal/school/service"
)

// Handler handles HTTP requests for school endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new school handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Search handles GET /api/schools?q=.
func (h *Handler) Search(c *gin.Context) {
	schools, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Errorw("error searching schools", "error", err)
		response.Internal(c, "Failed to fetch schools")
		return
	}
	response.OK(c, schools)
}

// Get handles GET /api/schools/:id.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, schoolModel.ErrSchoolNotFound) {
			response.NotFound(c, "School not found")
			return
		}
		h.logger.Errorw("error getting school", "school_id", id, "error", err)
		response.Internal(c, "Failed to fetch school")
		return
	}
	response.OK(c, detail)
}
