package interactions

import "errors"

var (
	// ErrSubjectNotFound indicates the post/comment being interacted with
	// doesn't exist or is not currently visible
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrInvalidSubjectType indicates the subject type is not post or comment
	ErrInvalidSubjectType = errors.New("invalid subject type: must be 'post' or 'comment'")

	// ErrInvalidKind indicates the interaction kind cannot be used with the
	// requested operation (e.g., toggling a share)
	ErrInvalidKind = errors.New("invalid interaction kind for this operation")
)
