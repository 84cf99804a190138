package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parishfeed/internal/core/interactions"
	"parishfeed/internal/core/posts"
)

// Service defines the business logic interface for view analytics
type Service interface {
	// RecordView counts a view for a post unless the same fingerprint already
	// viewed it within the dedup window. Duplicate views are silent no-ops.
	RecordView(ctx context.Context, postID, fingerprint string, at time.Time) error

	// MetricsFor composes the engagement projection for a post
	MetricsFor(ctx context.Context, postID string) (*Metrics, error)

	// SweepExpired deletes dedup state that has aged out of the window
	SweepExpired(ctx context.Context) (int64, error)
}

// analyticsService implements the Service interface
type analyticsService struct {
	repo     Repository
	posts    PostGetter
	ledger   InteractionCounter
	comments CommentCounter
	logger   *slog.Logger
}

// NewService creates a new view analytics service
func NewService(repo Repository, postGetter PostGetter, ledger InteractionCounter, comments CommentCounter, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &analyticsService{
		repo:     repo,
		posts:    postGetter,
		ledger:   ledger,
		comments: comments,
		logger:   logger,
	}
}

func (s *analyticsService) RecordView(ctx context.Context, postID, fingerprint string, at time.Time) error {
	if fingerprint == "" {
		return nil
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to load post: %w", err)
	}
	if !post.Visible() {
		return ErrPostNotFound
	}

	// Bucket to the UTC calendar day so the conditional insert carries the
	// whole dedup decision
	day := at.UTC().Truncate(DedupWindow)

	counted, err := s.repo.RecordView(ctx, postID, fingerprint, day)
	if err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}

	if counted {
		s.logger.Debug("view counted",
			"post_id", postID,
			"day", day.Format("2006-01-02"))
	}

	return nil
}

func (s *analyticsService) MetricsFor(ctx context.Context, postID string) (*Metrics, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	counts, err := s.ledger.Counts(ctx, interactions.SubjectPost, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction counts: %w", err)
	}

	commentCount, err := s.comments.CountByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment count: %w", err)
	}

	views := post.ViewCount
	denominator := views
	if denominator < 1 {
		denominator = 1
	}

	return &Metrics{
		Views:          views,
		Likes:          counts.Likes,
		Comments:       commentCount,
		Shares:         counts.Shares,
		EngagementRate: float64(counts.Likes+commentCount+counts.Shares) / float64(denominator),
	}, nil
}

func (s *analyticsService) SweepExpired(ctx context.Context) (int64, error) {
	// Keep a full extra window beyond the current bucket so a sweep racing
	// midnight never drops live dedup state
	cutoff := time.Now().UTC().Truncate(DedupWindow).Add(-DedupWindow)

	swept, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep view dedup state: %w", err)
	}
	return swept, nil
}
