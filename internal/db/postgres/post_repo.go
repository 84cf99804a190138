package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"parishfeed/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

const postColumns = `
	id, author_id, post_type, content, image_refs,
	event_title, event_location, event_starts_at,
	visibility, donation_enabled, donation_goal,
	view_count, version, created_at
`

func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (
			id, author_id, post_type, content, image_refs,
			event_title, event_location, event_starts_at,
			visibility, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10
		)
		RETURNING version, view_count
	`

	err := r.db.QueryRowContext(
		ctx, query,
		post.ID, post.AuthorID, post.Type, post.Content, pq.Array(post.ImageRefs),
		nullString(post.EventTitle), nullString(post.EventLocation), post.EventStartsAt,
		post.Visibility, post.CreatedAt,
	).Scan(&post.Version, &post.ViewCount)

	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *postgresPostRepo) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postgresPostRepo) ListVisible(ctx context.Context, limit, offset int) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE visibility IN ('published', 'warned')
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// UpdateVisibility applies an optimistic version-checked transition. The
// version column guards against two moderators resolving reports on the same
// post concurrently: the stale writer sees zero rows and gets a conflict.
// Removed rows never match, so no transition is reachable from removed even
// for a caller holding the current version.
func (r *postgresPostRepo) UpdateVisibility(ctx context.Context, id string, visibility posts.Visibility, expectedVersion int) error {
	query := `
		UPDATE posts
		SET visibility = $1, version = version + 1
		WHERE id = $2 AND version = $3 AND visibility <> 'removed'
	`

	result, err := r.db.ExecContext(ctx, query, visibility, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update visibility: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// Zero rows: the post is gone, already removed, or the version is stale
	var current posts.Visibility
	err = r.db.QueryRowContext(ctx, `SELECT visibility FROM posts WHERE id = $1`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return posts.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check post visibility: %w", err)
	}
	if current == posts.VisibilityRemoved {
		return posts.ErrPostRemoved
	}
	return posts.ErrVersionConflict
}

func (r *postgresPostRepo) UpdateDonation(ctx context.Context, id string, enabled bool, goal *int64) error {
	query := `
		UPDATE posts
		SET donation_enabled = $1, donation_goal = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, enabled, goal, id)
	if err != nil {
		return fmt.Errorf("failed to update donation settings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return posts.ErrPostNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(s scanner) (*posts.Post, error) {
	var post posts.Post
	var imageRefs pq.StringArray
	var eventTitle, eventLocation sql.NullString

	err := s.Scan(
		&post.ID, &post.AuthorID, &post.Type, &post.Content, &imageRefs,
		&eventTitle, &eventLocation, &post.EventStartsAt,
		&post.Visibility, &post.DonationEnabled, &post.DonationGoal,
		&post.ViewCount, &post.Version, &post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.ImageRefs = imageRefs
	post.EventTitle = eventTitle.String
	post.EventLocation = eventLocation.String

	return &post, nil
}

func collectPosts(rows *sql.Rows) ([]*posts.Post, error) {
	result := make([]*posts.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
