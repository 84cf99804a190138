package comments

import (
	"context"

	"parishfeed/internal/core/interactions"
	"parishfeed/internal/core/posts"
)

// Repository defines the data access contract for comments
type Repository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *Comment) error

	// GetByID retrieves a comment by ID.
	// Returns ErrCommentNotFound if no row exists.
	GetByID(ctx context.Context, id string) (*Comment, error)

	// ListByPost retrieves all comments for a post ordered by creation time
	// ascending (ties broken by ID for a deterministic listing)
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)

	// CountByPost returns the number of comments on a post
	CountByPost(ctx context.Context, postID string) (int64, error)
}

// PostGetter is the slice of the post store the thread engine needs:
// existence and visibility of the post being commented on.
type PostGetter interface {
	GetByID(ctx context.Context, id string) (*posts.Post, error)
}

// LikeCounter provides per-comment like counts for thread hydration.
// Satisfied by the interaction ledger repository.
type LikeCounter interface {
	LikesForSubjects(ctx context.Context, subjectType interactions.SubjectType, subjectIDs []string) (map[string]int64, error)
}
