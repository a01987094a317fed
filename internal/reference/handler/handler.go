// Package handler provides HTTP handlers for reference vocabulary endpoints.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/lookup"
	"github.com/festy23/pitmstr/internal/response"
)

// EntryLister returns the rows of a reference table.
type EntryLister interface {
	Entries(ctx context.Context, kind lookup.Kind) ([]lookup.Entry, error)
}

// Handler serves the cached reference tables.
type Handler struct {
	lookups EntryLister
	logger  *zap.SugaredLogger
}

// New creates a new reference handler instance.
func New(lookups EntryLister, logger *zap.SugaredLogger) *Handler {
	return &Handler{lookups: lookups, logger: logger}
}

// Divisions handles GET /api/divisions.
func (h *Handler) Divisions(c *gin.Context) {
	h.list(c, lookup.KindDivision, "Failed to fetch divisions")
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(c *gin.Context) {
	h.list(c, lookup.KindCategory, "Failed to fetch categories")
}

// States handles GET /api/states.
func (h *Handler) States(c *gin.Context) {
	h.list(c, lookup.KindState, "Failed to fetch states")
}

func (h *Handler) list(c *gin.Context, kind lookup.Kind, failure string) {
	entries, err := h.lookups.Entries(c.Request.Context(), kind)
	if err != nil {
		h.logger.Errorw("error listing reference table", "kind", kind, "error", err)
		response.Internal(c, failure)
		return
	}
	response.List(c, entries, len(entries))
}
