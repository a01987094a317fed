// Package router provides leaderboard module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/leaderboard/handler"
	"github.com/festy23/pitmstr/internal/leaderboard/repository"
	"github.com/festy23/pitmstr/internal/leaderboard/service"
	"github.com/festy23/pitmstr/internal/lookup"
	teamRepository "github.com/festy23/pitmstr/internal/team/repository"
)

// RegisterRoutes registers leaderboard module routes. observer may be nil.
func RegisterRoutes(r gin.IRouter, store datastore.Store, lookups *lookup.Cache, observer service.Observer, logger *zap.SugaredLogger) {
	repo := repository.New(store, lookups, logger)
	teams := teamRepository.New(store, lookups, logger)
	svc := service.New(repo, teams, observer, logger)
	h := handler.New(svc, logger)

	r.GET("/leaderboard", h.Get)
}
