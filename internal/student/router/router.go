// Package router provides student module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/middleware"
	"github.com/festy23/pitmstr/internal/student/handler"
	"github.com/festy23/pitmstr/internal/student/repository"
	"github.com/festy23/pitmstr/internal/student/service"
)

// RegisterRoutes registers student module routes.
func RegisterRoutes(r gin.IRouter, store datastore.Store, policy *auth.Policy, logger *zap.SugaredLogger) {
	repo := repository.New(store, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/students", middleware.RequirePermission(policy, auth.PermUsersViewAll), h.Search)
}
