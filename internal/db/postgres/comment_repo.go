package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"parishfeed/internal/core/comments"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, parent_id, author_id, content, depth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		comment.ID, comment.PostID, comment.ParentID,
		comment.AuthorID, comment.Content, comment.Depth, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func (r *postgresCommentRepo) GetByID(ctx context.Context, id string) (*comments.Comment, error) {
	query := `
		SELECT id, post_id, parent_id, author_id, content, depth, created_at
		FROM comments
		WHERE id = $1
	`

	var comment comments.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.ParentID,
		&comment.AuthorID, &comment.Content, &comment.Depth, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// ListByPost returns every comment on a post in creation order. The thread
// engine builds the tree in memory, so sibling order must be deterministic:
// creation time ascending with ID as the tiebreaker.
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	query := `
		SELECT id, post_id, parent_id, author_id, content, depth, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	result := make([]*comments.Comment, 0)
	for rows.Next() {
		var comment comments.Comment
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.ParentID,
			&comment.AuthorID, &comment.Content, &comment.Depth, &comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return result, nil
}

func (r *postgresCommentRepo) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
