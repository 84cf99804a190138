package interactions

import (
	"context"
)

// Repository defines the data access contract for the interaction ledger
type Repository interface {
	// Toggle atomically flips a like/bookmark for the (subject, actor, kind)
	// key: deletes the row if present, inserts it otherwise. Returns true when
	// the interaction is active after the call. Must be linearizable per key
	// so concurrent double-clicks cannot lose updates.
	Toggle(ctx context.Context, subjectType SubjectType, subjectID, actorID string, kind Kind) (bool, error)

	// InsertShare appends a share event; shares carry no uniqueness constraint
	InsertShare(ctx context.Context, subjectType SubjectType, subjectID, actorID string) error

	// Counts recomputes the aggregate counters for one subject from ledger rows
	Counts(ctx context.Context, subjectType SubjectType, subjectID string) (*Counts, error)

	// LikesForSubjects returns like counts keyed by subject ID, for batch
	// hydration of listings
	LikesForSubjects(ctx context.Context, subjectType SubjectType, subjectIDs []string) (map[string]int64, error)
}
