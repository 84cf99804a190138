package analytics

import (
	"context"
	"errors"
	"time"

	"parishfeed/internal/core/interactions"
	"parishfeed/internal/core/posts"
)

// DedupWindow is the span within which repeated views from the same
// fingerprint are not double-counted: one UTC calendar day.
const DedupWindow = 24 * time.Hour

var (
	// ErrPostNotFound indicates the post doesn't exist or is removed
	ErrPostNotFound = errors.New("post not found")
)

// Metrics is the read-side engagement projection for one post. It owns no
// source of truth beyond the view counter; everything else is composed from
// the post store, the interaction ledger, and the comment engine.
type Metrics struct {
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
	Shares         int64   `json:"shares"`
	EngagementRate float64 `json:"engagementRate"`
}

// Repository defines the data access contract for view dedup state
type Repository interface {
	// RecordView performs the atomic check-then-write for one view event: a
	// conditional insert keyed by (post, fingerprint, day bucket) that
	// increments the post's view counter only when the row is new. Returns
	// true when the view was counted.
	RecordView(ctx context.Context, postID, fingerprint string, day time.Time) (bool, error)

	// DeleteBefore removes dedup rows whose day bucket is older than cutoff,
	// returning the number of rows swept
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PostGetter is the slice of the post store the aggregator reads
type PostGetter interface {
	GetByID(ctx context.Context, id string) (*posts.Post, error)
}

// InteractionCounter provides ledger aggregates for a subject
type InteractionCounter interface {
	Counts(ctx context.Context, subjectType interactions.SubjectType, subjectID string) (*interactions.Counts, error)
}

// CommentCounter provides the comment count for a post
type CommentCounter interface {
	CountByPost(ctx context.Context, postID string) (int64, error)
}
