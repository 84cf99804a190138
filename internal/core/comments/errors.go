package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = errors.New("comment not found")

	// ErrPostNotFound indicates the post being commented on doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrPostRemoved indicates the post has been removed by moderation and
	// can no longer receive comments
	ErrPostRemoved = errors.New("post has been removed")

	// ErrParentNotFound indicates the parent comment doesn't exist
	ErrParentNotFound = errors.New("parent comment not found")

	// ErrParentMismatch indicates the parent comment belongs to another post
	ErrParentMismatch = errors.New("parent comment belongs to a different post")
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
