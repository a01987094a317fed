// Package repository provides data access layer for event module.
package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	eventModel "github.com/festy23/pitmstr/internal/event/model"
	"github.com/festy23/pitmstr/internal/lookup"
)

// Events table fields.
const (
	fieldName        = "Event Name"
	fieldDate        = "Event Date"
	fieldLocation    = "Location"
	fieldDivision    = "Division"
	fieldState       = "State"
	fieldCategory    = "Category"
	fieldDescription = "Description"
	fieldTeamCount   = "Team Count"
	fieldPhoto       = "Event Photo"
	fieldTeams       = "Teams"
)

// Repository defines the interface for event data access operations.
type Repository interface {
	// List returns up to maxRecords events, newest date first.
	List(ctx context.Context, maxRecords int) ([]eventModel.Event, error)

	// GetByID finds an event by record id.
	GetByID(ctx context.Context, id string) (*eventModel.Event, error)

	// Create inserts a new event.
	Create(ctx context.Context, req *eventModel.CreateEventRequest) (*eventModel.Event, error)

	// Delete removes an event.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store   datastore.Store
	lookups *lookup.Cache
	logger  *zap.SugaredLogger
}

// New creates a new event repository instance.
func New(store datastore.Store, lookups *lookup.Cache, logger *zap.SugaredLogger) Repository {
	return &repository{store: store, lookups: lookups, logger: logger}
}

// List returns up to maxRecords events, newest date first.
func (r *repository) List(ctx context.Context, maxRecords int) ([]eventModel.Event, error) {
	records, err := r.store.List(ctx, datastore.TableEvents, datastore.ListOptions{
		MaxRecords: maxRecords,
		Sort:       []datastore.Sort{{Field: fieldDate, Direction: datastore.SortDesc}},
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]eventModel.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, r.toEvent(ctx, rec))
	}
	return events, nil
}

// GetByID finds an event by record id.
func (r *repository) GetByID(ctx context.Context, id string) (*eventModel.Event, error) {
	rec, err := r.store.Find(ctx, datastore.TableEvents, id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, eventModel.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	event := r.toEvent(ctx, rec)
	return &event, nil
}

// Create inserts a new event.
func (r *repository) Create(ctx context.Context, req *eventModel.CreateEventRequest) (*eventModel.Event, error) {
	fields := datastore.Fields{
		fieldName: req.Name,
		fieldDate: req.Date,
	}
	if req.Location != "" {
		fields[fieldLocation] = req.Location
	}
	if req.Description != "" {
		fields[fieldDescription] = req.Description
	}
	if req.DivisionID != "" {
		fields[fieldDivision] = []string{req.DivisionID}
	}
	if req.StateID != "" {
		fields[fieldState] = []string{req.StateID}
	}
	if len(req.CategoryIDs) > 0 {
		fields[fieldCategory] = req.CategoryIDs
	}
	if len(req.TeamIDs) > 0 {
		fields[fieldTeams] = req.TeamIDs
	}

	rec, err := r.store.Create(ctx, datastore.TableEvents, fields)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	event := r.toEvent(ctx, rec)
	return &event, nil
}

// Delete removes an event.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, datastore.TableEvents, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return eventModel.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// toEvent resolves a raw record. Lookup failures degrade to fallbacks.
func (r *repository) toEvent(ctx context.Context, rec datastore.Record) eventModel.Event {
	location := rec.String(fieldLocation)
	event := eventModel.Event{
		ID:          rec.ID,
		CreatedTime: rec.CreatedTime,
		Name:        rec.String(fieldName),
		Date:        rec.String(fieldDate),
		Location:    location,
		City:        cityOf(location),
		Division:    eventModel.DefaultDivision,
		Description: rec.String(fieldDescription),
		ImageURL:    rec.ImageURL(fieldPhoto),
		TeamIDs:     rec.LinkedIDs(fieldTeams),
		Categories:  slices.Clone(eventModel.DefaultCategories),
	}
	if n, ok := rec.Number(fieldTeamCount); ok {
		count := int(n)
		event.RegisteredTeams = &count
	}

	if division, ok, err := r.lookups.Resolve(ctx, lookup.KindDivision, rec.FirstLinkedID(fieldDivision)); err != nil {
		r.logger.Warnw("division lookup failed", "event_id", rec.ID, "error", err)
	} else if ok && division != "" {
		event.Division = division
	}

	if state, ok, err := r.lookups.Entry(ctx, lookup.KindState, rec.FirstLinkedID(fieldState)); err != nil {
		r.logger.Warnw("state lookup failed", "event_id", rec.ID, "error", err)
	} else if ok {
		event.State = state.Label()
		event.StateName = state.Name
	}

	categories, err := r.lookups.ResolveAll(ctx, lookup.KindCategory, rec.LinkedIDs(fieldCategory))
	if err != nil {
		r.logger.Warnw("category lookup failed", "event_id", rec.ID, "error", err)
	} else if len(categories) > 0 {
		event.Categories = categories
	}

	return event
}

// cityOf returns the part of a free-text location before the first comma.
func cityOf(location string) string {
	city, _, _ := strings.Cut(location, ",")
	return strings.TrimSpace(city)
}
