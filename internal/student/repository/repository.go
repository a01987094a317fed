// Package repository provides data access layer for student module.
package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	studentModel "github.com/festy23/pitmstr/internal/student/model"
)

const (
	fieldName     = "Member Name"
	fieldTeam     = "Team"
	fieldRole     = "Role"
	fieldEmail    = "Email"
	fieldPhoto    = "Photo"
	fieldTeamName = "Team Name"
)

// Repository defines the interface for student data access operations.
type Repository interface {
	// Search returns students whose name, email or role contains query.
	Search(ctx context.Context, query string) ([]studentModel.Student, error)
}

type repository struct {
	store  datastore.Store
	logger *zap.SugaredLogger
}

// New creates a new student repository instance.
func New(store datastore.Store, logger *zap.SugaredLogger) Repository {
	return &repository{store: store, logger: logger}
}

// Search scans at most SearchScanLimit students and returns at most SearchResultLimit.
// Team names come from a single listing of the Teams table; a failed listing leaves them empty.
func (r *repository) Search(ctx context.Context, query string) ([]studentModel.Student, error) {
	records, err := r.store.List(ctx, datastore.TableStudents, datastore.ListOptions{
		MaxRecords: studentModel.SearchScanLimit,
		Sort:       []datastore.Sort{{Field: fieldName, Direction: datastore.SortAsc}},
	})
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	students := make([]studentModel.Student, 0)
	for _, rec := range records {
		s := studentModel.Student{
			ID:          rec.ID,
			CreatedTime: rec.CreatedTime,
			Name:        rec.String(fieldName),
			Role:        rec.String(fieldRole),
			Email:       rec.String(fieldEmail),
			PhotoURL:    rec.ImageURL(fieldPhoto),
			TeamID:      rec.FirstLinkedID(fieldTeam),
		}
		if needle != "" && !matches(s, needle) {
			continue
		}
		students = append(students, s)
		if len(students) >= studentModel.SearchResultLimit {
			break
		}
	}

	r.attachTeamNames(ctx, students)
	return students, nil
}

func (r *repository) attachTeamNames(ctx context.Context, students []studentModel.Student) {
	linked := false
	for _, s := range students {
		if s.TeamID != "" {
			linked = true
			break
		}
	}
	if !linked {
		return
	}

	teams, err := r.store.List(ctx, datastore.TableTeams, datastore.ListOptions{Fields: []string{fieldTeamName}})
	if err != nil {
		r.logger.Warnw("team names unavailable", "error", err)
		return
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.String(fieldTeamName)
	}
	for i := range students {
		students[i].TeamName = names[students[i].TeamID]
	}
}

func matches(s studentModel.Student, needle string) bool {
	for _, v := range []string{s.Name, s.Email, s.Role} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
