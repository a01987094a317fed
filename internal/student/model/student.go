// Package model provides domain models for student module.
package model

import "time"

// Search limits.
const (
	SearchScanLimit   = 100
	SearchResultLimit = 50
)

// Student is a team member record with its team name resolved.
type Student struct {
	ID          string    `json:"id"`
	CreatedTime time.Time `json:"createdTime"`
	Name        string    `json:"name"`
	Role        string    `json:"role,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	TeamID      string    `json:"teamId,omitempty"`
	TeamName    string    `json:"teamName,omitempty"`
}
