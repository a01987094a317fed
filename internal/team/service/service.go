// Package service provides business logic layer for team module.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	schoolModel "github.com/festy23/pitmstr/internal/school/model"
	teamModel "github.com/festy23/pitmstr/internal/team/model"
	"github.com/festy23/pitmstr/internal/team/repository"
)

// SchoolFinder loads a school by id.
type SchoolFinder interface {
	GetByID(ctx context.Context, id string) (*schoolModel.School, error)
}

// Service defines the interface for team business logic operations.
type Service interface {
	// Search returns teams matching query by name or state.
	Search(ctx context.Context, query string) ([]teamModel.Team, error)

	// Get returns a team with its members and school.
	Get(ctx context.Context, id string) (*teamModel.TeamDetail, error)

	// Create validates and stores a new team.
	Create(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.CreateTeamResponse, error)

	// Delete removes a team.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    repository.Repository
	schools SchoolFinder
	logger  *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, schools SchoolFinder, logger *zap.SugaredLogger) Service {
	return &service{
		repo:    repo,
		schools: schools,
		logger:  logger,
	}
}

// Search returns teams matching query by name or state.
func (s *service) Search(ctx context.Context, query string) ([]teamModel.Team, error) {
	s.logger.Debugw("Search called", "query", query)

	teams, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Errorw("Search failed", "error", err)
		return nil, err
	}
	return teams, nil
}

// Get returns a team with its members and school.
// Member and school failures are logged and degrade to empty values.
func (s *service) Get(ctx context.Context, id string) (*teamModel.TeamDetail, error) {
	if id == "" {
		return nil, teamModel.ErrTeamNotFound
	}

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &teamModel.TeamDetail{Team: team, Members: []teamModel.Member{}}

	var g errgroup.Group
	g.Go(func() error {
		members, err := s.repo.GetMembers(ctx, id)
		if err != nil {
			s.logger.Warnw("team members unavailable", "team_id", id, "error", err)
			return nil
		}
		detail.Members = members
		return nil
	})
	if team.SchoolID != "" {
		g.Go(func() error {
			school, err := s.schools.GetByID(ctx, team.SchoolID)
			if err != nil {
				s.logger.Warnw("team school unavailable", "team_id", id, "school_id", team.SchoolID, "error", err)
				return nil
			}
			detail.School = school
			return nil
		})
	}
	_ = g.Wait()

	return detail, nil
}

// Create validates and stores a new team.
func (s *service) Create(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.CreateTeamResponse, error) {
	s.logger.Debugw("Create called", "name", req.Name)

	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", teamModel.ErrInvalidTeam, err)
	}

	team, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Errorw("Create failed", "error", err)
		return nil, err
	}

	s.logger.Infow("Create completed", "team_id", team.ID)
	return &teamModel.CreateTeamResponse{ID: team.ID, Name: team.Name, State: team.State}, nil
}

// Delete removes a team.
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return teamModel.ErrTeamNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Delete completed", "team_id", id)
	return nil
}
