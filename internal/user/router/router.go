// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/middleware"
	"github.com/festy23/pitmstr/internal/user/handler"
	"github.com/festy23/pitmstr/internal/user/repository"
	"github.com/festy23/pitmstr/internal/user/service"
)

// RegisterRoutes registers user module routes.
func RegisterRoutes(r gin.IRouter, idp service.IdentityProvider, store datastore.Store, policy *auth.Policy, logger *zap.SugaredLogger) {
	repo := repository.New(store, logger)
	svc := service.New(repo, idp, logger)
	h := handler.New(svc, logger)

	manage := middleware.RequirePermission(policy, auth.PermUsersManage)
	r.GET("/users", manage, h.List)
	r.PATCH("/users/:id/role", manage, h.UpdateRole)
	r.PATCH("/users/:id/school", middleware.RequireAuth(), h.LinkSchool)
	r.PATCH("/users/:id/team", middleware.RequireAuth(), h.LinkTeam)
}
