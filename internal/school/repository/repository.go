// Package repository provides data access layer for school module.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/lookup"
	schoolModel "github.com/festy23/pitmstr/internal/school/model"
)

// Charter table fields.
const (
	fieldName   = "Charter Name"
	fieldCity   = "City"
	fieldState  = "State"
	fieldCounty = "County"
	fieldPhoto  = "Charter Photo"
	fieldTeams  = "Teams"
)

// Repository defines the interface for school data access operations.
type Repository interface {
	// Search returns schools whose name, city or state contains query.
	Search(ctx context.Context, query string) ([]schoolModel.School, error)

	// GetByID finds a school by record id.
	GetByID(ctx context.Context, id string) (*schoolModel.School, error)
}

type repository struct {
	store   datastore.Store
	lookups *lookup.Cache
	logger  *zap.SugaredLogger
}

// New creates a new school repository instance.
func New(store datastore.Store, lookups *lookup.Cache, logger *zap.SugaredLogger) Repository {
	return &repository{store: store, lookups: lookups, logger: logger}
}

// Search scans at most SearchScanLimit schools, sorted by name, and returns at most SearchResultLimit.
func (r *repository) Search(ctx context.Context, query string) ([]schoolModel.School, error) {
	records, err := r.store.List(ctx, datastore.TableCharter, datastore.ListOptions{
		MaxRecords: schoolModel.SearchScanLimit,
		Sort:       []datastore.Sort{{Field: fieldName, Direction: datastore.SortAsc}},
	})
	if err != nil {
		return nil, fmt.Errorf("search schools: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	schools := make([]schoolModel.School, 0)
	for _, rec := range records {
		school := r.toSchool(ctx, rec)
		if needle != "" && !matches(school, needle) {
			continue
		}
		schools = append(schools, school)
		if len(schools) >= schoolModel.SearchResultLimit {
			break
		}
	}
	return schools, nil
}

// GetByID finds a school by record id.
func (r *repository) GetByID(ctx context.Context, id string) (*schoolModel.School, error) {
	rec, err := r.store.Find(ctx, datastore.TableCharter, id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, schoolModel.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	school := r.toSchool(ctx, rec)
	return &school, nil
}

func (r *repository) toSchool(ctx context.Context, rec datastore.Record) schoolModel.School {
	school := schoolModel.School{
		ID:          rec.ID,
		CreatedTime: rec.CreatedTime,
		Name:        rec.String(fieldName),
		City:        rec.String(fieldCity),
		District:    rec.String(fieldCounty),
		LogoURL:     rec.ImageURL(fieldPhoto),
		TeamIDs:     rec.LinkedIDs(fieldTeams),
	}
	state, ok, err := r.lookups.Resolve(ctx, lookup.KindState, rec.FirstLinkedID(fieldState))
	switch {
	case err != nil:
		r.logger.Warnw("state lookup failed", "school_id", rec.ID, "error", err)
	case ok:
		school.State = state
	}
	return school
}

func matches(s schoolModel.School, needle string) bool {
	for _, v := range []string{s.Name, s.City, s.State} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
