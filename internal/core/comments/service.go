package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"parishfeed/internal/core/interactions"
	"parishfeed/internal/core/posts"
	"parishfeed/internal/events"
)

const (
	// DefaultMaxDepth is the deepest nesting level a reply may be stored at.
	// Top-level comments sit at depth 0. Replies that would exceed the cap are
	// reparented to the ancestor at the cap, never rejected.
	DefaultMaxDepth = 5

	// maxContentLength bounds comment content
	maxContentLength = 10000
)

// Service defines the business logic interface for the comment thread engine
type Service interface {
	// CreateComment validates and stores a new comment or reply
	CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error)

	// GetThread builds the full reply tree for a post: top-level comments by
	// creation time ascending, replies nested under their parent in creation
	// order
	GetThread(ctx context.Context, postID string) ([]*ThreadNode, error)

	// CountForPost returns the number of comments on a post
	CountForPost(ctx context.Context, postID string) (int64, error)
}

// commentService implements the Service interface
type commentService struct {
	repo      Repository
	postRepo  PostGetter
	likes     LikeCounter
	publisher events.Publisher
	logger    *slog.Logger
	maxDepth  int
}

// NewService creates a new comment thread service. maxDepth <= 0 selects
// DefaultMaxDepth.
func NewService(repo Repository, postRepo PostGetter, likes LikeCounter, publisher events.Publisher, logger *slog.Logger, maxDepth int) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &commentService{
		repo:      repo,
		postRepo:  postRepo,
		likes:     likes,
		publisher: publisher,
		logger:    logger,
		maxDepth:  maxDepth,
	}
}

func (s *commentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, NewValidationError("content", "content is required")
	}
	if len(content) > maxContentLength {
		return nil, NewValidationError("content", "content exceeds maximum length")
	}

	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post.Visibility == posts.VisibilityRemoved {
		return nil, ErrPostRemoved
	}

	parentID, depth, err := s.placeInThread(ctx, req.PostID, req.ParentID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        uuid.NewString(),
		PostID:    req.PostID,
		ParentID:  parentID,
		AuthorID:  req.AuthorID,
		Content:   content,
		Depth:     depth,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created",
		"comment_id", comment.ID,
		"post_id", comment.PostID,
		"author", comment.AuthorID,
		"depth", comment.Depth)

	s.publisher.Publish(ctx, events.Event{
		Kind:       events.KindCommentAdded,
		SubjectID:  comment.PostID,
		AudienceID: post.AuthorID,
		OccurredAt: comment.CreatedAt,
	})

	return comment, nil
}

// placeInThread resolves the effective parent and depth for a new comment.
// A reply whose depth would exceed the cap is reattached to the ancestor
// sitting at maxDepth-1, so the stored depth never exceeds maxDepth.
func (s *commentService) placeInThread(ctx context.Context, postID string, parentID *string) (*string, int, error) {
	if parentID == nil {
		return nil, 0, nil
	}

	parent, err := s.repo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return nil, 0, ErrParentNotFound
		}
		return nil, 0, fmt.Errorf("failed to load parent comment: %w", err)
	}
	if parent.PostID != postID {
		return nil, 0, ErrParentMismatch
	}

	// Walk up the parent chain until the new comment fits within the cap.
	// Stored depths are themselves clamped, so this terminates quickly.
	for parent.Depth+1 > s.maxDepth {
		if parent.ParentID == nil {
			break
		}
		parent, err = s.repo.GetByID(ctx, *parent.ParentID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to walk parent chain: %w", err)
		}
	}

	id := parent.ID
	return &id, parent.Depth + 1, nil
}

func (s *commentService) GetThread(ctx context.Context, postID string) ([]*ThreadNode, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	list, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	likeCounts, err := s.likeCounts(ctx, list)
	if err != nil {
		return nil, err
	}

	return buildThread(list, likeCounts), nil
}

func (s *commentService) CountForPost(ctx context.Context, postID string) (int64, error) {
	return s.repo.CountByPost(ctx, postID)
}

func (s *commentService) likeCounts(ctx context.Context, list []*Comment) (map[string]int64, error) {
	if s.likes == nil || len(list) == 0 {
		return map[string]int64{}, nil
	}

	ids := lo.Map(list, func(c *Comment, _ int) string { return c.ID })

	counts, err := s.likes.LikesForSubjects(ctx, interactions.SubjectComment, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment like counts: %w", err)
	}
	return counts, nil
}

// buildThread assembles the tree iteratively: an arena of nodes indexed by
// comment ID, children attached via a parent-ID lookup. Input is already in
// creation order, so sibling order falls out of the append order.
func buildThread(list []*Comment, likeCounts map[string]int64) []*ThreadNode {
	arena := make(map[string]*ThreadNode, len(list))
	roots := make([]*ThreadNode, 0)

	for _, c := range list {
		arena[c.ID] = &ThreadNode{
			Comment: c,
			Likes:   likeCounts[c.ID],
			Replies: []*ThreadNode{},
		}
	}

	for _, c := range list {
		node := arena[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := arena[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		} else {
			// Orphaned reply (parent missing from the set): surface it at the
			// top level rather than dropping it
			roots = append(roots, node)
		}
	}

	return roots
}
