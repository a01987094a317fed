package model

import "errors"

var (
	// ErrEventNotFound indicates that the requested event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidEvent indicates that a create request failed validation.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrInvalidStatus indicates an unknown status filter.
	ErrInvalidStatus = errors.New("invalid status")
)
