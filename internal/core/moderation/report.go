package moderation

import (
	"time"
)

// Reason classifies why a post was reported.
type Reason string

const (
	ReasonSpam          Reason = "spam"
	ReasonInappropriate Reason = "inappropriate"
	ReasonMisleading    Reason = "misleading"
	ReasonHarassment    Reason = "harassment"
	ReasonOther         Reason = "other"
)

// ValidReason reports whether r is a known report reason.
func ValidReason(r Reason) bool {
	switch r {
	case ReasonSpam, ReasonInappropriate, ReasonMisleading, ReasonHarassment, ReasonOther:
		return true
	}
	return false
}

// Status tracks a report through the moderation queue.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// Resolution records the authority's verdict on a resolved report.
type Resolution string

const (
	ResolutionNone    Resolution = "none"
	ResolutionKept    Resolution = "kept"
	ResolutionWarned  Resolution = "warned"
	ResolutionRemoved Resolution = "removed"
)

// Decision is the action an authority takes on a pending report.
type Decision string

const (
	DecisionKeep   Decision = "keep"
	DecisionWarn   Decision = "warn"
	DecisionRemove Decision = "remove"
)

// Report is a single moderation intake. Each report is adjudicated
// independently; multiple pending reports may coexist on one post.
type Report struct {
	ID          string     `json:"id" db:"id"`
	PostID      string     `json:"postId" db:"post_id"`
	ReporterID  string     `json:"reporterId" db:"reporter_id"`
	Reason      Reason     `json:"reason" db:"reason"`
	Description string     `json:"description,omitempty" db:"description"`
	Status      Status     `json:"status" db:"status"`
	Resolution  Resolution `json:"resolution" db:"resolution"`
	ResolverID  *string    `json:"resolverId,omitempty" db:"resolver_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty" db:"resolved_at"`
}

// FileReportRequest carries the caller-supplied fields for a new report.
type FileReportRequest struct {
	PostID      string `json:"-"`
	ReporterID  string `json:"-"`
	Reason      Reason `json:"reason"`
	Description string `json:"description"`
}

// ResolveRequest carries an authority decision on a pending report.
type ResolveRequest struct {
	ReportID   string   `json:"-"`
	ResolverID string   `json:"-"`
	Decision   Decision `json:"decision"`
}
