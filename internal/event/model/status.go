package model

import "time"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses an event date. Date-only values are calendar dates in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveStatus classifies an event date relative to now.
// Same calendar day in loc is live, a later instant is upcoming, anything else is completed.
// Empty or unparseable dates are upcoming.
func DeriveStatus(date string, now time.Time, loc *time.Location) Status {
	t, ok := ParseDate(date, loc)
	if !ok {
		return StatusUpcoming
	}

	ty, tm, td := t.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	switch {
	case ty == ny && tm == nm && td == nd:
		return StatusLive
	case t.After(now):
		return StatusUpcoming
	default:
		return StatusCompleted
	}
}
