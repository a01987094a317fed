// Package router provides reference vocabulary routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/lookup"
	"github.com/festy23/pitmstr/internal/reference/handler"
)

// RegisterRoutes registers reference vocabulary routes.
func RegisterRoutes(r gin.IRouter, lookups *lookup.Cache, logger *zap.SugaredLogger) {
	h := handler.New(lookups, logger)

	r.GET("/divisions", h.Divisions)
	r.GET("/categories", h.Categories)
	r.GET("/states", h.States)
}
