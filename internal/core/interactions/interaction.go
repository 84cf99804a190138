package interactions

import (
	"context"
	"time"
)

// SubjectType identifies what kind of entity an interaction targets.
type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
)

// ValidSubjectType reports whether t is a known subject type.
func ValidSubjectType(t SubjectType) bool {
	return t == SubjectPost || t == SubjectComment
}

// Kind identifies the interaction being recorded.
type Kind string

const (
	KindLike     Kind = "like"
	KindBookmark Kind = "bookmark"
	KindShare    Kind = "share"
)

// Interaction is a single ledger entry. Likes and bookmarks are unique per
// (subject, actor) and removable by toggle; shares are append-only events.
type Interaction struct {
	ID          int64       `json:"id" db:"id"`
	SubjectType SubjectType `json:"subjectType" db:"subject_type"`
	SubjectID   string      `json:"subjectId" db:"subject_id"`
	ActorID     string      `json:"actorId" db:"actor_id"`
	Kind        Kind        `json:"kind" db:"kind"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

// Counts is the aggregate projection over the ledger for one subject.
// Recomputed from ledger state on every read so it can never drift.
type Counts struct {
	Likes     int64 `json:"likes"`
	Bookmarks int64 `json:"bookmarks"`
	Shares    int64 `json:"shares"`
}

// ToggleState is the resulting state of a like/bookmark toggle.
type ToggleState string

const (
	StateActive   ToggleState = "active"
	StateInactive ToggleState = "inactive"
)

// Subject describes a resolved interaction target: the post it belongs to
// (the subject itself for posts), its author, and whether it is currently
// visible. Interactions against removed content are rejected.
type Subject struct {
	PostID   string
	AuthorID string
	Visible  bool
}

// SubjectResolver resolves interaction targets against the content stores.
// Comment subjects resolve visibility through their parent post.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, subjectType SubjectType, subjectID string) (*Subject, error)
}
