// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/lookup"
	"github.com/festy23/pitmstr/internal/middleware"
	schoolRepository "github.com/festy23/pitmstr/internal/school/repository"
	"github.com/festy23/pitmstr/internal/team/handler"
	"github.com/festy23/pitmstr/internal/team/repository"
	"github.com/festy23/pitmstr/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, store datastore.Store, lookups *lookup.Cache, policy *auth.Policy, logger *zap.SugaredLogger) {
	repo := repository.New(store, lookups, logger)
	schools := schoolRepository.New(store, lookups, logger)
	svc := service.New(repo, schools, logger)
	h := handler.New(svc, logger)

	r.GET("/teams", h.Search)
	r.GET("/teams/:id", h.Get)
	r.POST("/teams", middleware.RequirePermission(policy, auth.PermTeamsCreate), h.Create)
	r.DELETE("/teams", middleware.RequirePermission(policy, auth.PermTeamsDelete), h.Delete)
}
