package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"parishfeed/internal/core/analytics"
)

type postgresViewRepo struct {
	db *sql.DB
}

// NewViewRepository creates a new PostgreSQL view dedup repository
func NewViewRepository(db *sql.DB) analytics.Repository {
	return &postgresViewRepo{db: db}
}

// RecordView is the atomic check-then-write for view dedup: a conditional
// insert keyed by (post, fingerprint, day bucket), incrementing the post's
// view counter only when this transaction inserted the row. The primary key
// on post_views carries the whole dedup decision.
func (r *postgresViewRepo) RecordView(ctx context.Context, postID, fingerprint string, day time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin view transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO post_views (post_id, fingerprint, day_bucket)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`

	result, err := tx.ExecContext(ctx, insertQuery, postID, fingerprint, day)
	if err != nil {
		return false, fmt.Errorf("failed to insert view event: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if inserted == 0 {
		// Seen within the window: silent no-op
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit view transaction: %w", err)
		}
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, postID); err != nil {
		return false, fmt.Errorf("failed to increment view count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit view transaction: %w", err)
	}

	return true, nil
}

func (r *postgresViewRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_views WHERE day_bucket < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired view events: %w", err)
	}

	swept, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return swept, nil
}
