// Package repository mirrors identity provider users into the Users table and writes the audit log.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/user/model"
)

// Users table fields.
const (
	fieldClerkID   = "Clerk ID"
	fieldEmail     = "Email"
	fieldFirstName = "First Name"
	fieldLastName  = "Last Name"
	fieldRole      = "Role"
	fieldStatus    = "Status"
	fieldSchool    = "School"
	fieldState     = "State"
	fieldTeam      = "Team"
)

// Audit Log table fields.
const (
	fieldActor      = "Actor"
	fieldAction     = "Action"
	fieldEntityType = "Entity Type"
	fieldEntityID   = "Entity ID"
	fieldDetails    = "Details"
	fieldTimestamp  = "Timestamp"
)

// Repository defines the interface for user mirror and audit operations.
type Repository interface {
	// CreateUser inserts an active mirror row.
	CreateUser(ctx context.Context, profile model.Profile) error

	// UpdateUser refreshes the mirrored profile, creating the row when missing.
	UpdateUser(ctx context.Context, profile model.Profile) error

	// SuspendUser marks the mirror row suspended. A missing row is not an error.
	SuspendUser(ctx context.Context, clerkID string) error

	// UpdateRole stores a role and its links, creating the row when missing.
	UpdateRole(ctx context.Context, clerkID, role string, links model.Links) error

	// LogAudit appends an audit log entry.
	LogAudit(ctx context.Context, entry model.AuditEntry) error
}

type repository struct {
	store  datastore.Store
	now    func() time.Time
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(store datastore.Store, logger *zap.SugaredLogger) Repository {
	return &repository{store: store, now: time.Now, logger: logger}
}

func (r *repository) CreateUser(ctx context.Context, profile model.Profile) error {
	fields := profileFields(profile)
	fields[fieldClerkID] = profile.ClerkID
	fields[fieldStatus] = model.StatusActive
	if _, err := r.store.Create(ctx, datastore.TableUsers, fields); err != nil {
		return fmt.Errorf("create user mirror: %w", err)
	}
	r.logger.Infow("user mirrored", "clerk_id", profile.ClerkID)
	return nil
}

func (r *repository) UpdateUser(ctx context.Context, profile model.Profile) error {
	id, found, err := r.findByClerkID(ctx, profile.ClerkID)
	if err != nil {
		return err
	}
	if !found {
		return r.CreateUser(ctx, profile)
	}
	if _, err := r.store.Update(ctx, datastore.TableUsers, id, profileFields(profile)); err != nil {
		return fmt.Errorf("update user mirror: %w", err)
	}
	return nil
}

func (r *repository) SuspendUser(ctx context.Context, clerkID string) error {
	id, found, err := r.findByClerkID(ctx, clerkID)
	if err != nil {
		return err
	}
	if !found {
		r.logger.Warnw("suspend skipped, user not mirrored", "clerk_id", clerkID)
		return nil
	}
	if _, err := r.store.Update(ctx, datastore.TableUsers, id, datastore.Fields{fieldStatus: model.StatusSuspended}); err != nil {
		return fmt.Errorf("suspend user mirror: %w", err)
	}
	return nil
}

func (r *repository) UpdateRole(ctx context.Context, clerkID, role string, links model.Links) error {
	fields := datastore.Fields{fieldRole: role}
	if links.SchoolID != "" {
		fields[fieldSchool] = []string{links.SchoolID}
	}
	if links.StateID != "" {
		fields[fieldState] = []string{links.StateID}
	}
	if links.TeamID != "" {
		fields[fieldTeam] = []string{links.TeamID}
	}

	id, found, err := r.findByClerkID(ctx, clerkID)
	if err != nil {
		return err
	}
	if !found {
		fields[fieldClerkID] = clerkID
		fields[fieldStatus] = model.StatusActive
		if _, err := r.store.Create(ctx, datastore.TableUsers, fields); err != nil {
			return fmt.Errorf("create user mirror: %w", err)
		}
		return nil
	}
	if _, err := r.store.Update(ctx, datastore.TableUsers, id, fields); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	return nil
}

func (r *repository) LogAudit(ctx context.Context, entry model.AuditEntry) error {
	details := "{}"
	if len(entry.Details) > 0 {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("encode audit details: %w", err)
		}
		details = string(raw)
	}
	_, err := r.store.Create(ctx, datastore.TableAuditLog, datastore.Fields{
		fieldActor:      entry.ActorID,
		fieldAction:     entry.Action,
		fieldEntityType: entry.EntityType,
		fieldEntityID:   entry.EntityID,
		fieldDetails:    details,
		fieldTimestamp:  r.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// findByClerkID scans the Users table; the data service has no secondary index.
func (r *repository) findByClerkID(ctx context.Context, clerkID string) (string, bool, error) {
	records, err := r.store.List(ctx, datastore.TableUsers, datastore.ListOptions{Fields: []string{fieldClerkID}})
	if err != nil {
		return "", false, fmt.Errorf("find user mirror: %w", err)
	}
	for _, rec := range records {
		if rec.String(fieldClerkID) == clerkID {
			return rec.ID, true, nil
		}
	}
	return "", false, nil
}

func profileFields(p model.Profile) datastore.Fields {
	return datastore.Fields{
		fieldEmail:     p.Email,
		fieldFirstName: p.FirstName,
		fieldLastName:  p.LastName,
	}
}
