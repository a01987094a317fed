// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
)

// Fields fetched for counting. Listings request a single field to keep pages small.
const (
	fieldEventName   = "Event Name"
	fieldCharterName = "Charter Name"
	fieldTeamState   = "State"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// CountEvents returns the number of events.
	CountEvents(ctx context.Context) (int, error)

	// CountSchools returns the number of schools.
	CountSchools(ctx context.Context) (int, error)

	// TeamStates returns the number of teams and the number of distinct team states.
	TeamStates(ctx context.Context) (teams, states int, err error)
}

type repository struct {
	store  datastore.Store
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(store datastore.Store, logger *zap.SugaredLogger) Repository {
	return &repository{
		store:  store,
		logger: logger,
	}
}

// CountEvents returns the number of events.
func (r *repository) CountEvents(ctx context.Context) (int, error) {
	return r.count(ctx, datastore.TableEvents, fieldEventName)
}

// CountSchools returns the number of schools.
func (r *repository) CountSchools(ctx context.Context) (int, error) {
	return r.count(ctx, datastore.TableCharter, fieldCharterName)
}

// TeamStates returns the number of teams and the number of distinct team states.
// A team state is either free text or a link to the States table.
func (r *repository) TeamStates(ctx context.Context) (int, int, error) {
	records, err := r.store.List(ctx, datastore.TableTeams, datastore.ListOptions{Fields: []string{fieldTeamState}})
	if err != nil {
		return 0, 0, fmt.Errorf("count teams: %w", err)
	}

	states := make(map[string]struct{})
	for _, rec := range records {
		state := rec.String(fieldTeamState)
		if state == "" {
			state = rec.FirstLinkedID(fieldTeamState)
		}
		if state != "" {
			states[state] = struct{}{}
		}
	}
	return len(records), len(states), nil
}

func (r *repository) count(ctx context.Context, table, field string) (int, error) {
	records, err := r.store.List(ctx, table, datastore.ListOptions{Fields: []string{field}})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	r.logger.Debugw("table counted", "table", table, "count", len(records))
	return len(records), nil
}
