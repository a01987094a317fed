// Package datastore defines the table-oriented boundary to the external data service.
package datastore

import (
	"context"
	"errors"
	"time"
)

// Table names in the association's base.
const (
	TableEvents     = "Events"
	TableTeams      = "Teams"
	TableCharter    = "Charter"
	TableStudents   = "Students"
	TableTurnIns    = "Turn-Ins"
	TableDivisions  = "Divisions"
	TableCategories = "Categories"
	TableStates     = "States"
	TableUsers      = "Users"
	TableAuditLog   = "Audit Log"
)

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotConfigured indicates missing credentials for the data service.
	ErrNotConfigured = errors.New("data service is not configured")
)

// Fields holds the raw field values of a record.
// Linked-record fields are arrays of foreign record ids.
type Fields map[string]any

// Record is a single row of a table.
type Record struct {
	ID          string    `json:"id"`
	CreatedTime time.Time `json:"createdTime"`
	Fields      Fields    `json:"fields"`
}

// SortDirection is the ordering direction for a sort field.
type SortDirection string

const (
	// SortAsc sorts ascending.
	SortAsc SortDirection = "asc"
	// SortDesc sorts descending.
	SortDesc SortDirection = "desc"
)

// Sort describes ordering by a single field.
type Sort struct {
	Field     string
	Direction SortDirection
}

// ListOptions controls a table listing.
type ListOptions struct {
	// MaxRecords caps the number of returned records (0 means no cap).
	MaxRecords int
	// Sort orders the result.
	Sort []Sort
	// Fields restricts returned fields (empty means all fields).
	Fields []string
}

// Store is the data service contract: CRUD plus listing, no joins.
type Store interface {
	// List returns records of a table, following pagination to the end.
	List(ctx context.Context, table string, opts ListOptions) ([]Record, error)

	// Find returns one record by id or ErrNotFound.
	Find(ctx context.Context, table, id string) (Record, error)

	// Create inserts a record with the given fields.
	Create(ctx context.Context, table string, fields Fields) (Record, error)

	// Update merges fields into an existing record.
	Update(ctx context.Context, table, id string, fields Fields) (Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, table, id string) error

	// Ping verifies that the data service is reachable.
	Ping(ctx context.Context) error
}
