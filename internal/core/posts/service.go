package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"parishfeed/internal/core/identity"
	"parishfeed/internal/events"
)

const (
	// maxContentLength bounds free-text content for all post types
	maxContentLength = 10000

	// maxImageRefs bounds the number of image references on a photo post
	maxImageRefs = 10
)

// Service defines the business logic interface for post operations.
// Visibility transitions are reserved for the moderation workflow; donation
// operations are gated on post ownership.
type Service interface {
	// CreatePost validates the type-specific payload and stores a new post
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPost retrieves a single post by ID
	GetPost(ctx context.Context, id string) (*Post, error)

	// ListByAuthor retrieves an author's posts, newest first
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*Post, error)

	// ListVisible retrieves the public feed (published and warned posts)
	ListVisible(ctx context.Context, limit, offset int) ([]*Post, error)

	// SetVisibility applies a moderation visibility transition with an
	// optimistic version check. Only the moderation workflow calls this.
	SetVisibility(ctx context.Context, postID string, visibility Visibility, expectedVersion int) error

	// EnableDonation flips the donation flag on, optionally setting a goal.
	// Only the post author may call it, and only with a payout destination set.
	EnableDonation(ctx context.Context, postID, actorID string, goal *int64) (*Post, error)

	// DisableDonation flips the donation flag off and clears the goal
	DisableDonation(ctx context.Context, postID, actorID string) (*Post, error)
}

// postService implements the Service interface
type postService struct {
	repo       Repository
	authorizer identity.Authorizer
	publisher  events.Publisher
	logger     *slog.Logger
}

// NewService creates a new post service instance
func NewService(repo Repository, authorizer identity.Authorizer, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:       repo,
		authorizer: authorizer,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	post := &Post{
		ID:            uuid.NewString(),
		AuthorID:      req.AuthorID,
		Type:          req.Type,
		Content:       strings.TrimSpace(req.Content),
		ImageRefs:     req.ImageRefs,
		EventTitle:    strings.TrimSpace(req.EventTitle),
		EventLocation: strings.TrimSpace(req.EventLocation),
		EventStartsAt: req.EventStartsAt,
		Visibility:    VisibilityPublished,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		"post_id", post.ID,
		"author", post.AuthorID,
		"type", post.Type)

	s.publisher.Publish(ctx, events.Event{
		Kind:       events.KindPostCreated,
		SubjectID:  post.ID,
		AudienceID: post.AuthorID,
		OccurredAt: post.CreatedAt,
	})

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*Post, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListByAuthor(ctx, authorID, limit, offset)
}

func (s *postService) ListVisible(ctx context.Context, limit, offset int) ([]*Post, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListVisible(ctx, limit, offset)
}

func (s *postService) SetVisibility(ctx context.Context, postID string, visibility Visibility, expectedVersion int) error {
	switch visibility {
	case VisibilityPublished, VisibilityWarned, VisibilityRemoved:
	default:
		return NewValidationError("visibility", "unknown visibility state")
	}

	if err := s.repo.UpdateVisibility(ctx, postID, visibility, expectedVersion); err != nil {
		return err
	}

	s.logger.Info("post visibility changed",
		"post_id", postID,
		"visibility", visibility)

	return nil
}

func (s *postService) EnableDonation(ctx context.Context, postID, actorID string, goal *int64) (*Post, error) {
	if goal != nil && *goal <= 0 {
		return nil, NewValidationError("goalAmount", "goal must be a positive amount")
	}

	post, err := s.ownedPost(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	hasPayout, err := s.authorizer.HasPayoutDestination(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check payout destination: %w", err)
	}
	if !hasPayout {
		return nil, ErrPayoutUnset
	}

	if err := s.repo.UpdateDonation(ctx, postID, true, goal); err != nil {
		return nil, fmt.Errorf("failed to enable donation: %w", err)
	}

	s.logger.Info("donation enabled",
		"post_id", postID,
		"author", actorID)

	post.DonationEnabled = true
	post.DonationGoal = goal
	return post, nil
}

func (s *postService) DisableDonation(ctx context.Context, postID, actorID string) (*Post, error) {
	post, err := s.ownedPost(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDonation(ctx, postID, false, nil); err != nil {
		return nil, fmt.Errorf("failed to disable donation: %w", err)
	}

	post.DonationEnabled = false
	post.DonationGoal = nil
	return post, nil
}

// ownedPost loads a post and verifies the actor authored it
func (s *postService) ownedPost(ctx context.Context, postID, actorID string) (*Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}

// validateCreateRequest enforces the type-specific required fields
func validateCreateRequest(req CreatePostRequest) error {
	if req.AuthorID == "" {
		return NewValidationError("authorId", "author is required")
	}
	if !ValidType(req.Type) {
		return NewValidationError("type", "type must be general, photo, event, or prayer")
	}
	if len(req.Content) > maxContentLength {
		return NewValidationError("content", "content exceeds maximum length")
	}

	switch req.Type {
	case TypeGeneral, TypePrayer:
		if strings.TrimSpace(req.Content) == "" {
			return NewValidationError("content", "content is required")
		}
	case TypePhoto:
		if len(req.ImageRefs) == 0 {
			return NewValidationError("imageRefs", "at least one image reference is required")
		}
		if len(req.ImageRefs) > maxImageRefs {
			return NewValidationError("imageRefs", "too many image references")
		}
		for _, ref := range req.ImageRefs {
			if strings.TrimSpace(ref) == "" {
				return NewValidationError("imageRefs", "image reference cannot be empty")
			}
		}
	case TypeEvent:
		if strings.TrimSpace(req.EventTitle) == "" {
			return NewValidationError("eventTitle", "event title is required")
		}
		if req.EventStartsAt == nil {
			return NewValidationError("eventStartsAt", "event start time is required")
		}
	}

	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
