package posts

import (
	"time"
)

// Type identifies the payload shape of a post.
type Type string

const (
	TypeGeneral Type = "general"
	TypePhoto   Type = "photo"
	TypeEvent   Type = "event"
	TypePrayer  Type = "prayer"
)

// ValidType reports whether t is a known post type.
func ValidType(t Type) bool {
	switch t {
	case TypeGeneral, TypePhoto, TypeEvent, TypePrayer:
		return true
	}
	return false
}

// Visibility is the moderation-owned visibility state of a post.
// Transitions are applied only by the moderation workflow; removed is terminal.
type Visibility string

const (
	VisibilityPublished Visibility = "published"
	VisibilityWarned    Visibility = "warned"
	VisibilityRemoved   Visibility = "removed"
)

// Post is a church-published content record. The author (parish manager) owns
// the payload; moderation owns Visibility; the donation linkage owns the
// donation fields. ViewCount is maintained by the analytics aggregator.
type Post struct {
	ID              string     `json:"id" db:"id"`
	AuthorID        string     `json:"authorId" db:"author_id"`
	Type            Type       `json:"type" db:"post_type"`
	Content         string     `json:"content,omitempty" db:"content"`
	ImageRefs       []string   `json:"imageRefs,omitempty" db:"image_refs"`
	EventTitle      string     `json:"eventTitle,omitempty" db:"event_title"`
	EventLocation   string     `json:"eventLocation,omitempty" db:"event_location"`
	EventStartsAt   *time.Time `json:"eventStartsAt,omitempty" db:"event_starts_at"`
	Visibility      Visibility `json:"visibility" db:"visibility"`
	DonationEnabled bool       `json:"donationEnabled" db:"donation_enabled"`
	DonationGoal    *int64     `json:"donationGoal,omitempty" db:"donation_goal"`
	ViewCount       int64      `json:"viewCount" db:"view_count"`
	Version         int        `json:"-" db:"version"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}

// Visible reports whether the post may be shown and interacted with.
// Warned posts stay publicly visible, distinguished from removed.
func (p *Post) Visible() bool {
	return p.Visibility == VisibilityPublished || p.Visibility == VisibilityWarned
}

// CreatePostRequest carries the caller-supplied fields for a new post.
// AuthorID is injected from the authenticated context, never from the body.
type CreatePostRequest struct {
	AuthorID      string     `json:"-"`
	Type          Type       `json:"type"`
	Content       string     `json:"content"`
	ImageRefs     []string   `json:"imageRefs"`
	EventTitle    string     `json:"eventTitle"`
	EventLocation string     `json:"eventLocation"`
	EventStartsAt *time.Time `json:"eventStartsAt"`
}
