package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Uniqueness(t *testing.T) {
	errorList := []error{
		ErrUserNotFound,
		ErrInvalidRole,
		ErrNotSelf,
		ErrNotTeacher,
		ErrNotStudentOrParent,
		ErrSchoolAlreadyLinked,
		ErrTeamAlreadyLinked,
		ErrSchoolIDRequired,
		ErrTeamIDRequired,
	}

	seen := make(map[string]bool)
	for _, err := range errorList {
		msg := err.Error()
		assert.False(t, seen[msg], "Duplicate error message: %s", msg)
		seen[msg] = true
	}
}
