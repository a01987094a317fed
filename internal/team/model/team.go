// Package model provides domain models and DTOs for team module.
package model

import (
	"time"

	schoolModel "github.com/festy23/pitmstr/internal/school/model"
)

// DefaultDivision is used when a team has no resolvable division.
const DefaultDivision = "HSBBQ"

// Team is a competing team.
type Team struct {
	ID          string    `json:"id"`
	CreatedTime time.Time `json:"createdTime"`
	Name        string    `json:"name"`
	SchoolID    string    `json:"schoolId"`
	SchoolName  string    `json:"schoolName,omitempty"`
	Division    string    `json:"division"`
	Coach       string    `json:"coach,omitempty"`
	State       string    `json:"state,omitempty"`
}

// Member is a student on a team.
type Member struct {
	ID          string    `json:"id"`
	CreatedTime time.Time `json:"createdTime"`
	Name        string    `json:"name"`
	TeamID      string    `json:"teamId"`
	Role        string    `json:"role,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Email       string    `json:"email,omitempty"`
}

// TeamDetail is a team with its members and school.
// School is nil when the team links no school or the school cannot be loaded.
type TeamDetail struct {
	Team    *Team               `json:"team"`
	Members []Member            `json:"members"`
	School  *schoolModel.School `json:"school"`
}
