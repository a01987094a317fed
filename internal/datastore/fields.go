package datastore

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// String returns a text field, or "" when absent or not text.
func (r Record) String(field string) string {
	switch v := r.Fields[field].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// Number returns a numeric field. The second value is false when the field is absent or not numeric.
func (r Record) Number(field string) (float64, bool) {
	switch v := r.Fields[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// LinkedIDs returns all ids of a linked-record field.
func (r Record) LinkedIDs(field string) []string {
	switch v := r.Fields[field].(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if id, ok := item.(string); ok {
				ids = append(ids, id)
			}
		}
		return ids
	default:
		return []string{}
	}
}

// FirstLinkedID returns the first id of a linked-record field, or "".
func (r Record) FirstLinkedID(field string) string {
	ids := r.LinkedIDs(field)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// LinksTo reports whether a linked-record field contains id.
func (r Record) LinksTo(field, id string) bool {
	return slices.Contains(r.LinkedIDs(field), id)
}

// ImageURL returns the URL of the first attachment in field, or "".
func (r Record) ImageURL(field string) string {
	attachments, ok := r.Fields[field].([]any)
	if !ok || len(attachments) == 0 {
		return ""
	}
	switch a := attachments[0].(type) {
	case map[string]any:
		if url, ok := a["url"].(string); ok {
			return url
		}
	case Fields:
		if url, ok := a["url"].(string); ok {
			return url
		}
	}
	return ""
}
