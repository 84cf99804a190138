package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"parishfeed/internal/core/identity"
	"parishfeed/internal/core/posts"
	"parishfeed/internal/events"
)

const (
	// maxDescriptionLength bounds the free-text report description
	maxDescriptionLength = 2000

	// visibilityRetries bounds the optimistic retry loop on the visibility
	// transition before a conflict is surfaced to the caller
	visibilityRetries = 3
)

// Service defines the business logic interface for the moderation workflow.
// It is the only writer of post visibility.
type Service interface {
	// FileReport intakes a report against a published or warned post
	FileReport(ctx context.Context, req FileReportRequest) (*Report, error)

	// Queue lists pending reports, oldest first. Authority actors only.
	Queue(ctx context.Context, actorID string, limit, offset int) ([]*Report, error)

	// Resolve applies an authority decision to a pending report and, for warn
	// and remove, transitions the post's visibility. Removed is terminal: a
	// keep or warn decision against an already-removed post resolves the
	// report without resurrecting the post.
	Resolve(ctx context.Context, req ResolveRequest) (*Report, error)
}

// moderationService implements the Service interface
type moderationService struct {
	repo       Repository
	postStore  PostStore
	authorizer identity.Authorizer
	publisher  events.Publisher
	logger     *slog.Logger
}

// NewService creates a new moderation workflow service
func NewService(repo Repository, postStore PostStore, authorizer identity.Authorizer, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &moderationService{
		repo:       repo,
		postStore:  postStore,
		authorizer: authorizer,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *moderationService) FileReport(ctx context.Context, req FileReportRequest) (*Report, error) {
	if !ValidReason(req.Reason) {
		return nil, NewValidationError("reason", "reason must be spam, inappropriate, misleading, harassment, or other")
	}
	description := strings.TrimSpace(req.Description)
	if len(description) > maxDescriptionLength {
		return nil, NewValidationError("description", "description exceeds maximum length")
	}

	post, err := s.postStore.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post.Visibility == posts.VisibilityRemoved {
		return nil, ErrPostRemoved
	}
	if post.AuthorID == req.ReporterID {
		return nil, ErrOwnPost
	}

	report := &Report{
		ID:          uuid.NewString(),
		PostID:      req.PostID,
		ReporterID:  req.ReporterID,
		Reason:      req.Reason,
		Description: description,
		Status:      StatusPending,
		Resolution:  ResolutionNone,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to file report: %w", err)
	}

	s.logger.Info("report filed",
		"report_id", report.ID,
		"post_id", report.PostID,
		"reporter", report.ReporterID,
		"reason", report.Reason)

	return report, nil
}

func (s *moderationService) Queue(ctx context.Context, actorID string, limit, offset int) ([]*Report, error) {
	if err := s.requireAuthority(ctx, actorID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.ListPending(ctx, limit, offset)
}

func (s *moderationService) Resolve(ctx context.Context, req ResolveRequest) (*Report, error) {
	if err := s.requireAuthority(ctx, req.ResolverID); err != nil {
		return nil, err
	}

	resolution, target, err := decisionOutcome(req.Decision)
	if err != nil {
		return nil, err
	}

	report, err := s.repo.GetByID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	if report.Status == StatusResolved {
		return nil, ErrAlreadyResolved
	}

	// Claim the report before touching visibility. The conditional update is
	// side-effect free when another authority already resolved it, so a lost
	// claim race never leaves a stray visibility change behind.
	resolved, err := s.repo.Resolve(ctx, req.ReportID, req.ResolverID, resolution)
	if err != nil {
		return nil, err
	}

	if target != "" {
		if err := s.applyVisibility(ctx, resolved.PostID, target); err != nil {
			return nil, err
		}
	}

	s.logger.Info("report resolved",
		"report_id", resolved.ID,
		"post_id", resolved.PostID,
		"resolver", req.ResolverID,
		"resolution", resolution)

	post, err := s.postStore.GetByID(ctx, resolved.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload post after resolution: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Kind:       events.KindModerationDecided,
		SubjectID:  resolved.PostID,
		AudienceID: post.AuthorID,
		OccurredAt: time.Now().UTC(),
	})

	return resolved, nil
}

// applyVisibility runs the optimistic version-checked transition with bounded
// retries. An already-removed post short-circuits: removed is terminal and a
// concurrent remove supersedes warn outcomes.
func (s *moderationService) applyVisibility(ctx context.Context, postID string, target posts.Visibility) error {
	for attempt := 0; attempt < visibilityRetries; attempt++ {
		post, err := s.postStore.GetByID(ctx, postID)
		if err != nil {
			return fmt.Errorf("failed to load post for visibility transition: %w", err)
		}
		if post.Visibility == posts.VisibilityRemoved {
			return nil
		}
		if post.Visibility == target {
			return nil
		}

		err = s.postStore.UpdateVisibility(ctx, postID, target, post.Version)
		if err == nil {
			return nil
		}
		if errors.Is(err, posts.ErrPostRemoved) {
			// A concurrent remove won between the reload and the update;
			// removed supersedes this decision
			return nil
		}
		if !errors.Is(err, posts.ErrVersionConflict) {
			return fmt.Errorf("failed to update visibility: %w", err)
		}

		s.logger.Warn("visibility transition lost version race, retrying",
			"post_id", postID,
			"target", target,
			"attempt", attempt+1)
	}

	return ErrVisibilityConflict
}

func (s *moderationService) requireAuthority(ctx context.Context, actorID string) error {
	isAdmin, err := s.authorizer.IsSuperAdmin(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to check authority: %w", err)
	}
	if !isAdmin {
		return ErrNotAuthority
	}
	return nil
}

// decisionOutcome maps a decision to its report resolution and, for warn and
// remove, the post visibility it drives.
func decisionOutcome(d Decision) (Resolution, posts.Visibility, error) {
	switch d {
	case DecisionKeep:
		return ResolutionKept, "", nil
	case DecisionWarn:
		return ResolutionWarned, posts.VisibilityWarned, nil
	case DecisionRemove:
		return ResolutionRemoved, posts.VisibilityRemoved, nil
	default:
		return "", "", NewValidationError("decision", "decision must be keep, warn, or remove")
	}
}
