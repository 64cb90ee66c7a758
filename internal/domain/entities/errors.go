package entities

import "errors"

// Domain errors
var (
	// Task errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyExists = errors.New("task already exists")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")

	// Meeting errors
	ErrMeetingNotFound      = errors.New("meeting not found")
	ErrMeetingAlreadyExists = errors.New("meeting already exists")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
