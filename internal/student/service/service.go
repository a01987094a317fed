// Package service provides business logic layer for student module.
package service

import (
	"context"

	"go.uber.org/zap"

	studentModel "github.com/festy23/pitmstr/internal/student/model"
	"github.com/festy23/pitmstr/internal/student/repository"
)

// Service defines the interface for student business logic operations.
type Service interface {
	// Search returns students matching query by name, email or role.
	Search(ctx context.Context, query string) ([]studentModel.Student, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new student service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Search(ctx context.Context, query string) ([]studentModel.Student, error) {
	s.logger.Debugw("Search called", "query", query)

	students, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Errorw("Search failed", "error", err)
		return nil, err
	}

	s.logger.Debugw("Search completed", "count", len(students))
	return students, nil
}
