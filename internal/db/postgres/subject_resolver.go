package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"parishfeed/internal/core/interactions"
	"parishfeed/internal/core/posts"
)

type postgresSubjectResolver struct {
	db *sql.DB
}

// NewSubjectResolver creates a resolver for interaction targets. Posts resolve
// directly; comments resolve visibility through their parent post, and the
// interaction audience is the comment's author.
func NewSubjectResolver(db *sql.DB) interactions.SubjectResolver {
	return &postgresSubjectResolver{db: db}
}

func (r *postgresSubjectResolver) ResolveSubject(ctx context.Context, subjectType interactions.SubjectType, subjectID string) (*interactions.Subject, error) {
	switch subjectType {
	case interactions.SubjectPost:
		return r.resolvePost(ctx, subjectID)
	case interactions.SubjectComment:
		return r.resolveComment(ctx, subjectID)
	default:
		return nil, interactions.ErrInvalidSubjectType
	}
}

func (r *postgresSubjectResolver) resolvePost(ctx context.Context, postID string) (*interactions.Subject, error) {
	query := `SELECT author_id, visibility FROM posts WHERE id = $1`

	var authorID string
	var visibility posts.Visibility
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&authorID, &visibility)
	if err == sql.ErrNoRows {
		return nil, interactions.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve post subject: %w", err)
	}

	return &interactions.Subject{
		PostID:   postID,
		AuthorID: authorID,
		Visible:  visibility != posts.VisibilityRemoved,
	}, nil
}

func (r *postgresSubjectResolver) resolveComment(ctx context.Context, commentID string) (*interactions.Subject, error) {
	query := `
		SELECT c.post_id, c.author_id, p.visibility
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		WHERE c.id = $1
	`

	var postID, authorID string
	var visibility posts.Visibility
	err := r.db.QueryRowContext(ctx, query, commentID).Scan(&postID, &authorID, &visibility)
	if err == sql.ErrNoRows {
		return nil, interactions.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment subject: %w", err)
	}

	return &interactions.Subject{
		PostID:   postID,
		AuthorID: authorID,
		Visible:  visibility != posts.VisibilityRemoved,
	}, nil
}
