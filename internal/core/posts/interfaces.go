package posts

import (
	"context"
)

// Repository defines the data access contract for posts
type Repository interface {
	// Create inserts a new post
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by ID, removed posts included.
	// Returns ErrPostNotFound if no row exists.
	GetByID(ctx context.Context, id string) (*Post, error)

	// ListByAuthor retrieves an author's posts, newest first
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*Post, error)

	// ListVisible retrieves published and warned posts, newest first
	ListVisible(ctx context.Context, limit, offset int) ([]*Post, error)

	// UpdateVisibility applies an optimistic version-checked visibility
	// transition. Returns ErrVersionConflict when the stored version does not
	// match expectedVersion, ErrPostRemoved when the post is already removed
	// (removed is terminal), ErrPostNotFound when no row exists.
	UpdateVisibility(ctx context.Context, id string, visibility Visibility, expectedVersion int) error

	// UpdateDonation sets the donation flag and goal on a post
	UpdateDonation(ctx context.Context, id string, enabled bool, goal *int64) error
}
