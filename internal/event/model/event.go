package model

import "time"

// Status is the lifecycle state of an event, derived from its date.
type Status string

// Event statuses.
const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted:
		return true
	default:
		return false
	}
}

// DefaultDivision is used when an event or team has no resolvable division.
const DefaultDivision = "HSBBQ"

// DefaultCategories are shown when an event links no resolvable category.
var DefaultCategories = []string{"Brisket", "Pork", "Chicken"}

// Event is a competition event.
type Event struct {
	ID              string    `json:"id"`
	CreatedTime     time.Time `json:"createdTime"`
	Name            string    `json:"name"`
	Date            string    `json:"date"`
	Location        string    `json:"location"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Division        string    `json:"division"`
	Status          Status    `json:"status"`
	Description     string    `json:"description,omitempty"`
	RegisteredTeams *int      `json:"registeredTeams,omitempty"`
	Categories      []string  `json:"categories"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	TeamIDs         []string  `json:"teamIds"`

	// StateName is the full state name, used for filtering by name.
	StateName string `json:"-"`
}
