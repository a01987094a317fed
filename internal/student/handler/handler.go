// Package handler provides HTTP handlers for student endpoints.
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/response"
	"github.com/festy23/pitmstr/internal/student/service"
)

// Handler handles HTTP requests for student endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new student handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Search handles GET /api/students?q=.
func (h *Handler) Search(c *gin.Context) {
	students, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Errorw("error searching students", "error", err)
		response.Internal(c, "Failed to fetch students")
		return
	}
	response.OK(c, students)
}
