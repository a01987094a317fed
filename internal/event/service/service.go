// Package service provides business logic layer for event module.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	eventModel "github.com/festy23/pitmstr/internal/event/model"
	"github.com/festy23/pitmstr/internal/event/repository"
)

// Service defines the interface for event business logic operations.
type Service interface {
	// List returns events matching filter, newest date first.
	List(ctx context.Context, filter eventModel.ListFilter) ([]eventModel.Event, error)

	// Get returns a single event with its derived status.
	Get(ctx context.Context, id string) (*eventModel.Event, error)

	// Create validates and stores a new event.
	Create(ctx context.Context, req *eventModel.CreateEventRequest) (*eventModel.Event, error)

	// Delete removes an event.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.SugaredLogger
}

// New creates a new event service instance. Statuses are derived in loc.
func New(repo repository.Repository, loc *time.Location, logger *zap.SugaredLogger) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:   repo,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// List returns events matching filter, newest date first.
// The limit bounds the records scanned before filtering.
func (s *service) List(ctx context.Context, filter eventModel.ListFilter) ([]eventModel.Event, error) {
	s.logger.Debugw("List called", "status", filter.Status, "division", filter.Division, "state", filter.State)

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", eventModel.ErrInvalidStatus, filter.Status)
	}
	filter.Normalize()

	events, err := s.repo.List(ctx, filter.Limit)
	if err != nil {
		s.logger.Errorw("List failed", "error", err)
		return nil, err
	}

	now := s.now()
	result := make([]eventModel.Event, 0, len(events))
	for _, e := range events {
		if filter.Division != "" && e.Division != filter.Division {
			continue
		}
		if filter.State != "" && !matchesState(e, filter.State) {
			continue
		}
		e.Status = eventModel.DeriveStatus(e.Date, now, s.loc)
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		result = append(result, e)
	}

	s.logger.Debugw("List completed", "scanned", len(events), "returned", len(result))
	return result, nil
}

// Get returns a single event with its derived status.
func (s *service) Get(ctx context.Context, id string) (*eventModel.Event, error) {
	if id == "" {
		return nil, eventModel.ErrEventNotFound
	}
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Status = eventModel.DeriveStatus(event.Date, s.now(), s.loc)
	return event, nil
}

// Create validates and stores a new event.
func (s *service) Create(ctx context.Context, req *eventModel.CreateEventRequest) (*eventModel.Event, error) {
	s.logger.Debugw("Create called", "name", req.Name)

	req.Name = strings.TrimSpace(req.Name)
	req.Date = strings.TrimSpace(req.Date)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", eventModel.ErrInvalidEvent, err)
	}

	event, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Errorw("Create failed", "error", err)
		return nil, err
	}
	event.Status = eventModel.DeriveStatus(event.Date, s.now(), s.loc)

	s.logger.Infow("Create completed", "event_id", event.ID)
	return event, nil
}

// Delete removes an event.
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return eventModel.ErrEventNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Delete completed", "event_id", id)
	return nil
}

func matchesState(e eventModel.Event, state string) bool {
	return strings.EqualFold(e.State, state) || strings.EqualFold(e.StateName, state)
}
