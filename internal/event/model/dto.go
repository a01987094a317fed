package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MaxListLimit caps the number of events returned by a listing.
const MaxListLimit = 100

// ListFilter narrows an event listing. Zero values disable a filter.
type ListFilter struct {
	Status   Status
	Division string
	// State matches the state abbreviation or name.
	State string
	Limit int
}

// Normalize clamps the limit into (0, MaxListLimit].
func (f *ListFilter) Normalize() {
	if f.Limit <= 0 || f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
}

// CreateEventRequest is the body of POST /api/events.
type CreateEventRequest struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	DivisionID  string   `json:"divisionId"`
	StateID     string   `json:"stateId"`
	CategoryIDs []string `json:"categoryIds"`
	TeamIDs     []string `json:"teamIds"`
}

// Validate checks required fields and the date format.
func (r *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Date, validation.Required, validation.By(validDate)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := ParseDate(s, time.UTC); !ok {
		return errors.New("must be a valid date (YYYY-MM-DD or RFC 3339)")
	}
	return nil
}
