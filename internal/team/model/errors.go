package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeam indicates that a create request failed validation.
	ErrInvalidTeam = errors.New("invalid team")
)
