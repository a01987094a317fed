// Package router provides event module routes registration.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/event/handler"
	"github.com/festy23/pitmstr/internal/event/repository"
	"github.com/festy23/pitmstr/internal/event/service"
	"github.com/festy23/pitmstr/internal/lookup"
	"github.com/festy23/pitmstr/internal/middleware"
)

// RegisterRoutes registers event module routes. Statuses are derived in loc.
func RegisterRoutes(r gin.IRouter, store datastore.Store, lookups *lookup.Cache, policy *auth.Policy, loc *time.Location, logger *zap.SugaredLogger) {
	repo := repository.New(store, lookups, logger)
	svc := service.New(repo, loc, logger)
	h := handler.New(svc, logger)

	r.GET("/events", h.List)
	r.GET("/events/:id", h.Get)
	r.POST("/events", middleware.RequirePermission(policy, auth.PermEventsCreate), h.Create)
	r.DELETE("/events", middleware.RequirePermission(policy, auth.PermEventsDelete), h.Delete)
}
