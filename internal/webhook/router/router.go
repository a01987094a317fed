// Package router provides webhook routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	userRepository "github.com/festy23/pitmstr/internal/user/repository"
	userService "github.com/festy23/pitmstr/internal/user/service"
	"github.com/festy23/pitmstr/internal/webhook/handler"
)

// RegisterRoutes registers the identity provider webhook. Deliveries only
// touch the Users mirror, so no identity provider client is needed.
func RegisterRoutes(r gin.IRouter, secret string, store datastore.Store, recorder handler.Recorder, logger *zap.SugaredLogger) {
	repo := userRepository.New(store, logger)
	svc := userService.New(repo, nil, logger)
	h := handler.New(secret, svc, recorder, logger)

	r.POST("/webhooks/clerk", h.Handle)
}
