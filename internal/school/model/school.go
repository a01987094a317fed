// Package model provides domain models for school module.
package model

import (
	"errors"
	"time"
)

// ErrSchoolNotFound indicates that the requested school does not exist.
var ErrSchoolNotFound = errors.New("school not found")

// School is a participating school (a charter in the data service).
type School struct {
	ID          string    `json:"id"`
	CreatedTime time.Time `json:"createdTime"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	District    string    `json:"district,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	TeamIDs     []string  `json:"teams"`
}

// Search limits.
const (
	SearchScanLimit   = 100
	SearchResultLimit = 50
)

// TeamSummary is a team as listed on its school's page.
type TeamSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Division string `json:"division"`
	State    string `json:"state,omitempty"`
}

// SchoolDetail is a school with its resolved teams.
type SchoolDetail struct {
	School *School       `json:"school"`
	Teams  []TeamSummary `json:"teams"`
}
