// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/middleware"
	"github.com/festy23/pitmstr/internal/response"
	"github.com/festy23/pitmstr/internal/user/model"
	"github.com/festy23/pitmstr/internal/user/service"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

type clientError struct {
	status  int
	message string
}

var clientErrors = map[error]clientError{
	model.ErrUserNotFound:        {http.StatusNotFound, "User not found"},
	model.ErrInvalidRole:         {http.StatusBadRequest, "Invalid role. Must be one of: " + auth.RoleNames()},
	model.ErrNotSelf:             {http.StatusForbidden, "You can only link your own account"},
	model.ErrNotTeacher:          {http.StatusForbidden, "Only teachers can self-link a school"},
	model.ErrNotStudentOrParent:  {http.StatusForbidden, "Only students and parents can self-link a team"},
	model.ErrSchoolAlreadyLinked: {http.StatusBadRequest, "School already linked. Contact an admin to change it."},
	model.ErrTeamAlreadyLinked:   {http.StatusBadRequest, "Team already linked. Contact an admin to change it."},
	model.ErrSchoolIDRequired:    {http.StatusBadRequest, "schoolId is required"},
	model.ErrTeamIDRequired:      {http.StatusBadRequest, "teamId is required"},
}

// writeError maps domain errors to client messages and everything else to a 500 with fallback.
func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	for target, ce := range clientErrors {
		if errors.Is(err, target) {
			response.Error(c, ce.status, ce.message)
			return
		}
	}
	h.logger.Errorw(fallback, "path", c.Request.URL.Path, "error", err)
	response.Internal(c, fallback)
}

// List handles GET /api/users?q=&limit=&offset=.
func (h *Handler) List(c *gin.Context) {
	params := model.ListParams{Query: c.Query("q")}

	var err error
	if raw := c.Query("limit"); raw != "" {
		if params.Limit, err = strconv.Atoi(raw); err != nil {
			response.BadRequest(c, "Invalid limit")
			return
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if params.Offset, err = strconv.Atoi(raw); err != nil {
			response.BadRequest(c, "Invalid offset")
			return
		}
	}

	users, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.writeError(c, err, "Failed to fetch users")
		return
	}
	response.List(c, users, total)
}

// UpdateRole handles PATCH /api/users/:id/role.
func (h *Handler) UpdateRole(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.UpdateRole(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err, "Failed to update user role")
		return
	}
	response.OK(c, resp)
}

// LinkSchool handles PATCH /api/users/:id/school.
func (h *Handler) LinkSchool(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.LinkSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.LinkSchool(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err, "Failed to link school")
		return
	}
	response.OK(c, resp)
}

// LinkTeam handles PATCH /api/users/:id/team.
func (h *Handler) LinkTeam(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.LinkTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.LinkTeam(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err, "Failed to link team")
		return
	}
	response.OK(c, resp)
}
