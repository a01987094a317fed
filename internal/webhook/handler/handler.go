// Package handler verifies and applies identity provider webhooks.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
	"go.uber.org/zap"

	userModel "github.com/festy23/pitmstr/internal/user/model"
	"github.com/festy23/pitmstr/internal/webhook/model"
)

const maxPayloadBytes = 1 << 20

// Syncer applies user lifecycle events to the Users mirror.
type Syncer interface {
	SyncCreated(ctx context.Context, profile userModel.Profile) error
	SyncUpdated(ctx context.Context, profile userModel.Profile) error
	SyncDeleted(ctx context.Context, clerkID string) error
}

// Recorder counts handled events.
type Recorder interface {
	RecordWebhookEvent(eventType string, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordWebhookEvent(string, error) {}

type verifier interface {
	Verify(payload []byte, headers http.Header) error
}

// Handler handles POST /api/webhooks/clerk.
type Handler struct {
	verifier verifier
	syncer   Syncer
	recorder Recorder
	logger   *zap.SugaredLogger
}

// New creates a webhook handler. An empty or malformed secret leaves the
// endpoint answering 500 until it is configured.
func New(secret string, syncer Syncer, recorder Recorder, logger *zap.SugaredLogger) *Handler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	h := &Handler{syncer: syncer, recorder: recorder, logger: logger}
	if secret == "" {
		logger.Warnw("webhook secret not configured")
		return h
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		logger.Errorw("invalid webhook secret", "error", err)
		return h
	}
	h.verifier = wh
	return h
}

// Handle verifies the svix signature and applies the event.
func (h *Handler) Handle(c *gin.Context) {
	if h.verifier == nil {
		c.String(http.StatusInternalServerError, "Webhook secret not configured")
		return
	}

	headers := c.Request.Header
	if headers.Get("svix-id") == "" || headers.Get("svix-timestamp") == "" || headers.Get("svix-signature") == "" {
		c.String(http.StatusBadRequest, "Missing svix headers")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := h.verifier.Verify(payload, headers); err != nil {
		h.logger.Warnw("webhook verification failed", "svix_id", headers.Get("svix-id"), "error", err)
		c.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	var evt model.Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	if err := h.apply(c.Request.Context(), evt); err != nil {
		h.recorder.RecordWebhookEvent(evt.Type, err)
		h.logger.Errorw("webhook processing failed", "type", evt.Type, "user_id", evt.Data.ID, "error", err)
		c.String(http.StatusInternalServerError, "Failed to process webhook")
		return
	}
	h.recorder.RecordWebhookEvent(evt.Type, nil)
	c.String(http.StatusOK, "OK")
}

func (h *Handler) apply(ctx context.Context, evt model.Event) error {
	switch evt.Type {
	case model.EventUserCreated:
		profile := evt.Data.Profile()
		if err := h.syncer.SyncCreated(ctx, profile); err != nil {
			return err
		}
		h.logger.Infow("user mirrored", "user_id", profile.ClerkID, "email", profile.Email)
	case model.EventUserUpdated:
		profile := evt.Data.Profile()
		if err := h.syncer.SyncUpdated(ctx, profile); err != nil {
			return err
		}
		h.logger.Infow("user mirror updated", "user_id", profile.ClerkID, "email", profile.Email)
	case model.EventUserDeleted:
		if evt.Data.ID == "" {
			return nil
		}
		if err := h.syncer.SyncDeleted(ctx, evt.Data.ID); err != nil {
			return err
		}
		h.logger.Infow("user mirror suspended", "user_id", evt.Data.ID)
	default:
		h.logger.Debugw("webhook event ignored", "type", evt.Type)
	}
	return nil
}
