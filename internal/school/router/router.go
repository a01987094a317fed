// Package router provides school module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/lookup"
	"github.com/festy23/pitmstr/internal/school/handler"
	"github.com/festy23/pitmstr/internal/school/repository"
	"github.com/festy23/pitmstr/internal/school/service"
	teamRepository "github.com/festy23/pitmstr/internal/team/repository"
)

// RegisterRoutes registers school module routes.
func RegisterRoutes(r gin.IRouter, store datastore.Store, lookups *lookup.Cache, logger *zap.SugaredLogger) {
	repo := repository.New(store, lookups, logger)
	teams := teamRepository.New(store, lookups, logger)
	svc := service.New(repo, teams, logger)
	h := handler.New(svc, logger)

	r.GET("/schools", h.Search)
	r.GET("/schools/:id", h.Get)
}
