// Package repository provides data access layer for leaderboard module.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	leaderboardModel "github.com/festy23/pitmstr/internal/leaderboard/model"
	"github.com/festy23/pitmstr/internal/lookup"
)

const (
	fieldEventTeams = "Teams"

	fieldTurnInEvent    = "Event"
	fieldTurnInTeam     = "Team"
	fieldTurnInCategory = "Category"
	fieldTurnInScore    = "Total Score"
)

// Repository defines the interface for leaderboard data access operations.
type Repository interface {
	// EventTeamIDs returns the ids of teams linked to an event.
	EventTeamIDs(ctx context.Context, eventID string) ([]string, error)

	// Submissions returns the turn-ins of an event with category labels resolved.
	Submissions(ctx context.Context, eventID string) ([]leaderboardModel.Submission, error)
}

type repository struct {
	store   datastore.Store
	lookups *lookup.Cache
	logger  *zap.SugaredLogger
}

// New creates a new leaderboard repository instance.
func New(store datastore.Store, lookups *lookup.Cache, logger *zap.SugaredLogger) Repository {
	return &repository{store: store, lookups: lookups, logger: logger}
}

func (r *repository) EventTeamIDs(ctx context.Context, eventID string) ([]string, error) {
	rec, err := r.store.Find(ctx, datastore.TableEvents, eventID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, leaderboardModel.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return rec.LinkedIDs(fieldEventTeams), nil
}

// Submissions lists every turn-in and keeps those linked to the event.
// The data service offers no join on linked records, so filtering happens here.
func (r *repository) Submissions(ctx context.Context, eventID string) ([]leaderboardModel.Submission, error) {
	records, err := r.store.List(ctx, datastore.TableTurnIns, datastore.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list turn-ins: %w", err)
	}

	submissions := make([]leaderboardModel.Submission, 0)
	for _, rec := range records {
		if !rec.LinksTo(fieldTurnInEvent, eventID) {
			continue
		}
		teamID := rec.FirstLinkedID(fieldTurnInTeam)
		if teamID == "" {
			continue
		}
		score, _ := rec.Number(fieldTurnInScore)
		categories, err := r.lookups.ResolveAll(ctx, lookup.KindCategory, rec.LinkedIDs(fieldTurnInCategory))
		if err != nil {
			r.logger.Warnw("category lookup failed", "turn_in_id", rec.ID, "error", err)
		}
		submissions = append(submissions, leaderboardModel.Submission{
			ID:         rec.ID,
			TeamID:     teamID,
			Categories: categories,
			Score:      score,
		})
	}
	return submissions, nil
}
