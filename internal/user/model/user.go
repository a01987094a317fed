// Package model provides domain models for user module.
package model

// Public metadata keys shared with the identity provider's session claims.
const (
	MetaRole     = "role"
	MetaSchoolID = "schoolId"
	MetaStateID  = "stateId"
	MetaTeamID   = "teamId"
)

// Mirror status values.
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
)

// User is an identity provider account as listed to admins.
// Metadata fields are null when unset.
type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	ImageURL     string  `json:"imageUrl"`
	Role         *string `json:"role"`
	SchoolID     *string `json:"schoolId"`
	StateID      *string `json:"stateId"`
	CreatedAt    int64   `json:"createdAt"`
	LastSignInAt *int64  `json:"lastSignInAt"`
}

// Profile is the identity data mirrored into the Users table.
type Profile struct {
	ClerkID   string
	Email     string
	FirstName string
	LastName  string
}

// Links are the optional record links stored with a mirrored role.
type Links struct {
	SchoolID string
	StateID  string
	TeamID   string
}

// AuditEntry is one row of the audit log.
type AuditEntry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Details    map[string]any
}

// Audit actions.
const (
	ActionRoleAssigned     = "role.assigned"
	ActionSchoolSelfLinked = "school.self_linked"
	ActionTeamSelfLinked   = "team.self_linked"
)
