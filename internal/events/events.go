package events

import (
	"context"
	"time"
)

// Kind identifies a domain event.
type Kind string

const (
	KindPostCreated         Kind = "post_created"
	KindInteractionOccurred Kind = "interaction_occurred"
	KindCommentAdded        Kind = "comment_added"
	KindModerationDecided   Kind = "moderation_decided"
)

// Event is a lightweight notification emitted after a state change commits.
// SubjectID names the entity the event is about; AudienceID names the actor
// the event is for (typically the post author).
type Event struct {
	Kind       Kind      `json:"kind"`
	SubjectID  string    `json:"subjectId"`
	AudienceID string    `json:"audienceId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher fans out domain events. Publishing is best-effort and must never
// fail the request that produced the event, so the method returns nothing;
// implementations log and drop on delivery failure.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}
