// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/statistics/handler"
	"github.com/festy23/pitmstr/internal/statistics/repository"
	"github.com/festy23/pitmstr/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r gin.IRouter, store datastore.Store, logger *zap.SugaredLogger) {
	repo := repository.New(store, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/stats", h.GetTotals)
}
