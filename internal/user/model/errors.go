package model

import "errors"

var (
	// ErrUserNotFound indicates that the identity provider has no such user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole indicates a role outside the policy's role set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrNotSelf indicates an attempt to self-link another user's account.
	ErrNotSelf = errors.New("cannot link another user's account")
	// ErrNotTeacher indicates a school self-link by a non-teacher.
	ErrNotTeacher = errors.New("only teachers can self-link a school")
	// ErrNotStudentOrParent indicates a team self-link by someone other than a student or parent.
	ErrNotStudentOrParent = errors.New("only students and parents can self-link a team")
	// ErrSchoolAlreadyLinked indicates a second school self-link.
	ErrSchoolAlreadyLinked = errors.New("school already linked")
	// ErrTeamAlreadyLinked indicates a second team self-link.
	ErrTeamAlreadyLinked = errors.New("team already linked")
	// ErrSchoolIDRequired indicates a school self-link without a school id.
	ErrSchoolIDRequired = errors.New("schoolId is required")
	// ErrTeamIDRequired indicates a team self-link without a team id.
	ErrTeamIDRequired = errors.New("teamId is required")
)
