package services

import "errors"

// Domain errors for the incident group lifecycle. Handlers translate
// these into HTTP statuses with errors.Is; anything not listed here is
// treated as an internal error.
var (
	// Validation failures, detected before any write.
	ErrEmptyEmployeeList    = errors.New("employee list is empty")
	ErrIncidentTypeInactive = errors.New("incident type is inactive or does not exist")
	ErrEmptyDescription     = errors.New("description is required")

	// Not found.
	ErrGroupNotFound        = errors.New("incident group not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrRecordNotFound       = errors.New("incident record not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Conflicts: the group is already in a terminal state, or a second
	// resolution raced on the unique group constraint.
	ErrGroupClosed         = errors.New("incident group is already closed")
	ErrDuplicateResolution = errors.New("incident group already has a resolution")

	// Forbidden: the actor may not perform the operation.
	ErrNoEmployeeProfile = errors.New("user has no employee profile")
	ErrNotRecordOwner    = errors.New("record belongs to another employee")
)
