package model

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// List bounds.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListParams filters the user listing.
type ListParams struct {
	Query  string
	Limit  int
	Offset int
}

// Normalize applies the default limit and clamps values into range.
func (p *ListParams) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// UpdateRoleRequest sets any of role, school and state. Absent fields are left unchanged.
type UpdateRoleRequest struct {
	Role     *string `json:"role"`
	SchoolID *string `json:"schoolId"`
	StateID  *string `json:"stateId"`
}

// RoleResponse is the user's metadata after a role update.
type RoleResponse struct {
	UserID   string `json:"userId"`
	Role     any    `json:"role"`
	SchoolID any    `json:"schoolId"`
	StateID  any    `json:"stateId"`
}

// LinkSchoolRequest self-links a teacher to a school.
type LinkSchoolRequest struct {
	SchoolID string `json:"schoolId"`
}

// Validate checks the request.
func (r LinkSchoolRequest) Validate() error {
	if err := validation.Validate(r.SchoolID, validation.Required); err != nil {
		return ErrSchoolIDRequired
	}
	return nil
}

// LinkSchoolResponse confirms a school self-link.
type LinkSchoolResponse struct {
	UserID   string `json:"userId"`
	SchoolID string `json:"schoolId"`
}

// LinkTeamRequest self-links a student or parent to a team.
type LinkTeamRequest struct {
	TeamID string `json:"teamId"`
}

// Validate checks the request.
func (r LinkTeamRequest) Validate() error {
	if err := validation.Validate(r.TeamID, validation.Required); err != nil {
		return ErrTeamIDRequired
	}
	return nil
}

// LinkTeamResponse confirms a team self-link.
type LinkTeamResponse struct {
	UserID string `json:"userId"`
	TeamID string `json:"teamId"`
}
