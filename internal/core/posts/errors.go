package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for post operations
var (
	// ErrPostNotFound is returned when no post exists for the given ID
	ErrPostNotFound = errors.New("post not found")

	// ErrPostRemoved is returned when the operation is not valid against a
	// removed post
	ErrPostRemoved = errors.New("post has been removed")

	// ErrNotPostAuthor is returned when the actor does not own the post
	ErrNotPostAuthor = errors.New("actor is not the post author")

	// ErrPayoutUnset is returned when donations are enabled without a payout
	// destination configured for the author
	ErrPayoutUnset = errors.New("author has no payout destination configured")

	// ErrVersionConflict is returned when an optimistic visibility update
	// lost the race against a concurrent writer
	ErrVersionConflict = errors.New("post was modified concurrently")
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

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
