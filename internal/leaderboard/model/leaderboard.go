// Package model provides domain models for leaderboard module.
package model

// CategoryOverall selects all submissions regardless of category.
const CategoryOverall = "Overall"

// Submission is one scored turn-in of a team.
type Submission struct {
	ID     string
	TeamID string
	// Categories holds every category label the turn-in is linked to.
	Categories []string
	Score      float64
}

// Team is an event team resolved for display.
type Team struct {
	ID         string
	Name       string
	SchoolID   string
	SchoolName string
	State      string
	Division   string
}

// CategoryScore is a team's mean score and rank within one category.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
}

// Entry is one ranked row of a leaderboard.
type Entry struct {
	Rank        int             `json:"rank"`
	TeamID      string          `json:"teamId"`
	TeamName    string          `json:"teamName"`
	SchoolID    string          `json:"schoolId"`
	SchoolName  string          `json:"schoolName,omitempty"`
	State       string          `json:"state"`
	Division    string          `json:"division"`
	Score       float64         `json:"score"`
	Submissions int             `json:"submissions"`
	Categories  []CategoryScore `json:"categories"`
}

// SkippedTeam is an event team left out because it could not be resolved.
type SkippedTeam struct {
	TeamID string `json:"teamId"`
	Error  string `json:"error"`
}

// Result is a computed leaderboard.
type Result struct {
	EventID  string        `json:"eventId"`
	Category string        `json:"category"`
	Entries  []Entry       `json:"entries"`
	Skipped  []SkippedTeam `json:"skipped"`
}
