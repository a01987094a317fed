// Package service computes event leaderboards.
package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	leaderboardModel "github.com/festy23/pitmstr/internal/leaderboard/model"
	"github.com/festy23/pitmstr/internal/leaderboard/repository"
	teamModel "github.com/festy23/pitmstr/internal/team/model"
)

// DefaultFanOut bounds concurrent team lookups per computation.
const DefaultFanOut = 8

// TeamFinder loads a team, with its school name, by id.
type TeamFinder interface {
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)
}

// Observer records leaderboard computations.
type Observer interface {
	ObserveLeaderboard(elapsed time.Duration, skipped int)
}

// Service defines the interface for leaderboard operations.
type Service interface {
	// Compute ranks the teams of an event, optionally within one category.
	Compute(ctx context.Context, eventID, category string) (*leaderboardModel.Result, error)
}

type service struct {
	repo     repository.Repository
	teams    TeamFinder
	observer Observer
	fanOut   int
	logger   *zap.SugaredLogger
}

// New creates a new leaderboard service instance. observer may be nil.
func New(repo repository.Repository, teams TeamFinder, observer Observer, logger *zap.SugaredLogger) Service {
	return &service{
		repo:     repo,
		teams:    teams,
		observer: observer,
		fanOut:   DefaultFanOut,
		logger:   logger,
	}
}

// Compute ranks the teams of an event, optionally within one category.
// Teams that fail to resolve are reported in Result.Skipped rather than failing the request.
func (s *service) Compute(ctx context.Context, eventID, category string) (*leaderboardModel.Result, error) {
	s.logger.Debugw("Compute called", "event_id", eventID, "category", category)
	start := time.Now()

	if IsOverall(category) {
		category = leaderboardModel.CategoryOverall
	} else {
		category = strings.TrimSpace(category)
	}
	result := &leaderboardModel.Result{
		EventID:  eventID,
		Category: category,
		Entries:  []leaderboardModel.Entry{},
		Skipped:  []leaderboardModel.SkippedTeam{},
	}

	teamIDs, err := s.repo.EventTeamIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	teamIDs = unique(teamIDs)
	if len(teamIDs) == 0 {
		s.observe(start, 0)
		return result, nil
	}

	var submissions []leaderboardModel.Submission
	teams := make([]*leaderboardModel.Team, len(teamIDs))
	failures := make([]error, len(teamIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subs, err := s.repo.Submissions(gctx, eventID)
		if err != nil {
			return err
		}
		submissions = subs
		return nil
	})
	g.Go(func() error {
		var fan errgroup.Group
		fan.SetLimit(s.fanOut)
		for i, id := range teamIDs {
			fan.Go(func() error {
				team, err := s.teams.GetByID(gctx, id)
				if err == nil && team == nil {
					err = teamModel.ErrTeamNotFound
				}
				if err != nil {
					failures[i] = err
					return nil
				}
				teams[i] = &leaderboardModel.Team{
					ID:         team.ID,
					Name:       team.Name,
					SchoolID:   team.SchoolID,
					SchoolName: team.SchoolName,
					State:      team.State,
					Division:   team.Division,
				}
				return nil
			})
		}
		return fan.Wait()
	})
	if err := g.Wait(); err != nil {
		s.logger.Errorw("Compute failed", "event_id", eventID, "error", err)
		return nil, err
	}

	resolved := make([]leaderboardModel.Team, 0, len(teams))
	for i, team := range teams {
		if team != nil {
			resolved = append(resolved, *team)
			continue
		}
		s.logger.Warnw("leaderboard team skipped", "event_id", eventID, "team_id", teamIDs[i], "error", failures[i])
		result.Skipped = append(result.Skipped, leaderboardModel.SkippedTeam{
			TeamID: teamIDs[i],
			Error:  failures[i].Error(),
		})
	}

	result.Entries = Aggregate(resolved, submissions, category)
	s.observe(start, len(result.Skipped))

	s.logger.Infow("Compute completed",
		"event_id", eventID,
		"teams", len(result.Entries),
		"skipped", len(result.Skipped),
		"submissions", len(submissions),
	)
	return result, nil
}

func (s *service) observe(start time.Time, skipped int) {
	if s.observer != nil {
		s.observer.ObserveLeaderboard(time.Since(start), skipped)
	}
}

func unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
