// Package model provides data transfer objects for statistics module.
package model

// Totals are the association-wide counts shown on the landing page.
type Totals struct {
	Events  int `json:"events"`
	Teams   int `json:"teams"`
	Schools int `json:"schools"`
	// States counts distinct states among registered teams.
	States int `json:"states"`
}
