// Package service provides business logic layer for school module.
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	schoolModel "github.com/festy23/pitmstr/internal/school/model"
	"github.com/festy23/pitmstr/internal/school/repository"
	teamModel "github.com/festy23/pitmstr/internal/team/model"
)

// teamFanOut bounds concurrent team lookups for one school.
const teamFanOut = 5

// TeamFinder loads a team by id.
type TeamFinder interface {
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)
}

// Service defines the interface for school business logic operations.
type Service interface {
	// Search returns schools matching query by name, city or state.
	Search(ctx context.Context, query string) ([]schoolModel.School, error)

	// Get returns a school with its teams.
	Get(ctx context.Context, id string) (*schoolModel.SchoolDetail, error)
}

type service struct {
	repo   repository.Repository
	teams  TeamFinder
	logger *zap.SugaredLogger
}

// New creates a new school service instance.
func New(repo repository.Repository, teams TeamFinder, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		teams:  teams,
		logger: logger,
	}
}

// Search returns schools matching query by name, city or state.
func (s *service) Search(ctx context.Context, query string) ([]schoolModel.School, error) {
	s.logger.Debugw("Search called", "query", query)

	schools, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Errorw("Search failed", "error", err)
		return nil, err
	}
	return schools, nil
}

// Get returns a school with its teams. Teams that fail to load are skipped.
func (s *service) Get(ctx context.Context, id string) (*schoolModel.SchoolDetail, error) {
	if id == "" {
		return nil, schoolModel.ErrSchoolNotFound
	}

	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved := make([]*schoolModel.TeamSummary, len(school.TeamIDs))
	var g errgroup.Group
	g.SetLimit(teamFanOut)
	for i, teamID := range school.TeamIDs {
		g.Go(func() error {
			team, err := s.teams.GetByID(ctx, teamID)
			if err != nil {
				s.logger.Warnw("school team unavailable", "school_id", id, "team_id", teamID, "error", err)
				return nil
			}
			resolved[i] = &schoolModel.TeamSummary{
				ID:       team.ID,
				Name:     team.Name,
				Division: team.Division,
				State:    team.State,
			}
			return nil
		})
	}
	_ = g.Wait()

	detail := &schoolModel.SchoolDetail{School: school, Teams: make([]schoolModel.TeamSummary, 0, len(resolved))}
	for _, t := range resolved {
		if t != nil {
			detail.Teams = append(detail.Teams, *t)
		}
	}
	return detail, nil
}
