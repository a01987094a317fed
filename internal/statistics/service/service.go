// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/pitmstr/internal/statistics/model"
	"github.com/festy23/pitmstr/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetTotals returns association-wide counts.
	GetTotals(ctx context.Context) (*model.Totals, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetTotals fetches the three tables in parallel. Any failure fails the whole call.
func (s *service) GetTotals(ctx context.Context) (*model.Totals, error) {
	s.logger.Debugw("GetTotals called")

	var totals model.Totals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountEvents(gctx)
		totals.Events = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountSchools(gctx)
		totals.Schools = n
		return err
	})
	g.Go(func() error {
		teams, states, err := s.repo.TeamStates(gctx)
		totals.Teams, totals.States = teams, states
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Errorw("GetTotals failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetTotals completed", "events", totals.Events, "teams", totals.Teams, "schools", totals.Schools, "states", totals.States)
	return &totals, nil
}
