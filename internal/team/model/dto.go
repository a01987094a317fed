package model

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Search limits.
const (
	SearchScanLimit   = 50
	SearchResultLimit = 20
)

// CreateTeamRequest is the body of POST /api/teams.
type CreateTeamRequest struct {
	Name       string `json:"name"`
	SchoolID   string `json:"schoolId"`
	DivisionID string `json:"division"`
	Coach      string `json:"coach"`
	State      string `json:"state"`
}

// Validate checks required fields.
func (r *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.Name, validation.Required.Error("Team name is required"), validation.Length(1, 200)),
		validation.Field(&r.State, validation.Length(0, 100)),
	)
}

// CreateTeamResponse is returned after a team is created.
type CreateTeamResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}
