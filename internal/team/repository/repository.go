// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/lookup"
	teamModel "github.com/festy23/pitmstr/internal/team/model"
)

// Teams and Students table fields.
const (
	fieldTeamName    = "Team Name"
	fieldDivision    = "Division"
	fieldCharter     = "Charter"
	fieldCoach       = "Advisor / Coach"
	fieldState       = "State"
	fieldCharterName = "Charter Name"

	fieldMemberName  = "Member Name"
	fieldMemberTeam  = "Team"
	fieldMemberRole  = "Role"
	fieldMemberPhoto = "Photo"
	fieldMemberEmail = "Email"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Search returns teams whose name or state contains query, case-insensitively.
	Search(ctx context.Context, query string) ([]teamModel.Team, error)

	// GetByID finds a team by record id.
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)

	// GetMembers returns the students linked to a team.
	GetMembers(ctx context.Context, teamID string) ([]teamModel.Member, error)

	// Create inserts a new team.
	Create(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error)

	// Delete removes a team.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store   datastore.Store
	lookups *lookup.Cache
	logger  *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(store datastore.Store, lookups *lookup.Cache, logger *zap.SugaredLogger) Repository {
	return &repository{store: store, lookups: lookups, logger: logger}
}

// Search scans at most SearchScanLimit teams and returns at most SearchResultLimit matches.
// An empty query matches every scanned team.
func (r *repository) Search(ctx context.Context, query string) ([]teamModel.Team, error) {
	records, err := r.store.List(ctx, datastore.TableTeams, datastore.ListOptions{MaxRecords: teamModel.SearchScanLimit})
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	teams := make([]teamModel.Team, 0, teamModel.SearchResultLimit)
	for _, rec := range records {
		team := r.toTeam(ctx, rec)
		if needle != "" &&
			!strings.Contains(strings.ToLower(team.Name), needle) &&
			!strings.Contains(strings.ToLower(team.State), needle) {
			continue
		}
		r.attachSchool(ctx, &team, rec)
		teams = append(teams, team)
		if len(teams) >= teamModel.SearchResultLimit {
			break
		}
	}
	return teams, nil
}

// GetByID finds a team by record id.
func (r *repository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	rec, err := r.store.Find(ctx, datastore.TableTeams, id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	team := r.toTeam(ctx, rec)
	r.attachSchool(ctx, &team, rec)
	return &team, nil
}

// GetMembers returns the students linked to a team.
func (r *repository) GetMembers(ctx context.Context, teamID string) ([]teamModel.Member, error) {
	records, err := r.store.List(ctx, datastore.TableStudents, datastore.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	members := make([]teamModel.Member, 0)
	for _, rec := range records {
		if !rec.LinksTo(fieldMemberTeam, teamID) {
			continue
		}
		members = append(members, teamModel.Member{
			ID:          rec.ID,
			CreatedTime: rec.CreatedTime,
			Name:        rec.String(fieldMemberName),
			TeamID:      teamID,
			Role:        rec.String(fieldMemberRole),
			PhotoURL:    rec.ImageURL(fieldMemberPhoto),
			Email:       rec.String(fieldMemberEmail),
		})
	}
	return members, nil
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error) {
	fields := datastore.Fields{
		fieldTeamName: req.Name,
		fieldState:    req.State,
	}
	if req.Coach != "" {
		fields[fieldCoach] = req.Coach
	}
	if req.SchoolID != "" {
		fields[fieldCharter] = []string{req.SchoolID}
	}
	if req.DivisionID != "" {
		fields[fieldDivision] = []string{req.DivisionID}
	}

	rec, err := r.store.Create(ctx, datastore.TableTeams, fields)
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	team := r.toTeam(ctx, rec)
	return &team, nil
}

// Delete removes a team.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, datastore.TableTeams, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return teamModel.ErrTeamNotFound
		}
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (r *repository) toTeam(ctx context.Context, rec datastore.Record) teamModel.Team {
	team := teamModel.Team{
		ID:          rec.ID,
		CreatedTime: rec.CreatedTime,
		Name:        rec.String(fieldTeamName),
		Division:    teamModel.DefaultDivision,
		Coach:       rec.String(fieldCoach),
		State:       r.stateOf(ctx, rec),
	}
	if division, ok, err := r.lookups.Resolve(ctx, lookup.KindDivision, rec.FirstLinkedID(fieldDivision)); err != nil {
		r.logger.Warnw("division lookup failed", "team_id", rec.ID, "error", err)
	} else if ok && division != "" {
		team.Division = division
	}
	return team
}

// stateOf reads the team state, which is free text or a link to the States table.
func (r *repository) stateOf(ctx context.Context, rec datastore.Record) string {
	if s := rec.String(fieldState); s != "" {
		return s
	}
	label, ok, err := r.lookups.Resolve(ctx, lookup.KindState, rec.FirstLinkedID(fieldState))
	if err != nil {
		r.logger.Warnw("state lookup failed", "team_id", rec.ID, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return label
}

// attachSchool fills the school id and name. A missing school leaves both empty.
func (r *repository) attachSchool(ctx context.Context, team *teamModel.Team, rec datastore.Record) {
	charterID := rec.FirstLinkedID(fieldCharter)
	if charterID == "" {
		return
	}
	charter, err := r.store.Find(ctx, datastore.TableCharter, charterID)
	if err != nil {
		r.logger.Warnw("school lookup failed", "team_id", rec.ID, "school_id", charterID, "error", err)
		return
	}
	team.SchoolID = charter.ID
	team.SchoolName = charter.String(fieldCharterName)
}
