package moderation

import (
	"errors"
	"fmt"
)

var (
	// ErrReportNotFound indicates the requested report doesn't exist
	ErrReportNotFound = errors.New("report not found")

	// ErrPostNotFound indicates the reported post doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrPostRemoved indicates the post is already removed; removed posts
	// accept no further reports
	ErrPostRemoved = errors.New("post has already been removed")

	// ErrOwnPost indicates the reporter authored the post being reported
	ErrOwnPost = errors.New("cannot report your own post")

	// ErrNotAuthority indicates the actor lacks super-admin authority
	ErrNotAuthority = errors.New("actor does not hold moderation authority")

	// ErrAlreadyResolved indicates the report has already been adjudicated
	ErrAlreadyResolved = errors.New("report already resolved")

	// ErrVisibilityConflict indicates the visibility transition kept losing
	// the optimistic version race after bounded retries
	ErrVisibilityConflict = errors.New("visibility transition conflicted, try again")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
