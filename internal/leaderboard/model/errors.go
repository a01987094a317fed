package model

import "errors"

// ErrEventNotFound indicates that the leaderboard's event does not exist.
var ErrEventNotFound = errors.New("event not found")
