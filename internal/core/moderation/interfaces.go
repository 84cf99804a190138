package moderation

import (
	"context"

	"parishfeed/internal/core/posts"
)

// Repository defines the data access contract for reports
type Repository interface {
	// Create inserts a new report, conditionally on the post still being
	// reportable. Returns ErrPostRemoved when the post was removed after the
	// caller's visibility check, ErrPostNotFound when the post is gone.
	Create(ctx context.Context, report *Report) error

	// GetByID retrieves a report by ID.
	// Returns ErrReportNotFound if no row exists.
	GetByID(ctx context.Context, id string) (*Report, error)

	// ListPending retrieves the moderation queue: pending reports, oldest first
	ListPending(ctx context.Context, limit, offset int) ([]*Report, error)

	// Resolve marks a pending report resolved with the given verdict. The
	// update is conditional on the report still being pending so two
	// authorities cannot both claim it; returns ErrAlreadyResolved when the
	// report was already adjudicated.
	Resolve(ctx context.Context, reportID, resolverID string, resolution Resolution) (*Report, error)
}

// PostStore is the slice of the post store the workflow needs: loading posts
// and applying version-checked visibility transitions. Satisfied by
// posts.Repository.
type PostStore interface {
	GetByID(ctx context.Context, id string) (*posts.Post, error)
	UpdateVisibility(ctx context.Context, id string, visibility posts.Visibility, expectedVersion int) error
}
