package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"parishfeed/internal/core/interactions"
)

type postgresInteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepository creates a new PostgreSQL interaction ledger repository
func NewInteractionRepository(db *sql.DB) interactions.Repository {
	return &postgresInteractionRepo{db: db}
}

// Toggle flips the (subject, actor, kind) ledger key inside one transaction:
// delete the row if it exists, otherwise insert it. The partial unique index
// on non-share rows makes the insert race-safe; a concurrent insert winning
// the race leaves the interaction active, which matches the caller's intent.
func (r *postgresInteractionRepo) Toggle(ctx context.Context, subjectType interactions.SubjectType, subjectID, actorID string, kind interactions.Kind) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `
		DELETE FROM interactions
		WHERE subject_type = $1 AND subject_id = $2 AND actor_id = $3 AND kind = $4
	`

	result, err := tx.ExecContext(ctx, deleteQuery, subjectType, subjectID, actorID, kind)
	if err != nil {
		return false, fmt.Errorf("failed to delete interaction: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if deleted > 0 {
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit toggle: %w", err)
		}
		return false, nil
	}

	insertQuery := `
		INSERT INTO interactions (subject_type, subject_id, actor_id, kind, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT DO NOTHING
	`

	if _, err := tx.ExecContext(ctx, insertQuery, subjectType, subjectID, actorID, kind); err != nil {
		return false, fmt.Errorf("failed to insert interaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle: %w", err)
	}

	return true, nil
}

func (r *postgresInteractionRepo) InsertShare(ctx context.Context, subjectType interactions.SubjectType, subjectID, actorID string) error {
	query := `
		INSERT INTO interactions (subject_type, subject_id, actor_id, kind, created_at)
		VALUES ($1, $2, $3, 'share', NOW())
	`

	if _, err := r.db.ExecContext(ctx, query, subjectType, subjectID, actorID); err != nil {
		return fmt.Errorf("failed to insert share: %w", err)
	}

	return nil
}

func (r *postgresInteractionRepo) Counts(ctx context.Context, subjectType interactions.SubjectType, subjectID string) (*interactions.Counts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE kind = 'like'),
			COUNT(*) FILTER (WHERE kind = 'bookmark'),
			COUNT(*) FILTER (WHERE kind = 'share')
		FROM interactions
		WHERE subject_type = $1 AND subject_id = $2
	`

	var counts interactions.Counts
	err := r.db.QueryRowContext(ctx, query, subjectType, subjectID).
		Scan(&counts.Likes, &counts.Bookmarks, &counts.Shares)
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}

	return &counts, nil
}

func (r *postgresInteractionRepo) LikesForSubjects(ctx context.Context, subjectType interactions.SubjectType, subjectIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT subject_id, COUNT(*)
		FROM interactions
		WHERE subject_type = $1 AND kind = 'like' AND subject_id = ANY($2)
		GROUP BY subject_id
	`

	rows, err := r.db.QueryContext(ctx, query, subjectType, pq.Array(subjectIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var subjectID string
		var count int64
		if err := rows.Scan(&subjectID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan like count: %w", err)
		}
		result[subjectID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate like counts: %w", err)
	}

	return result, nil
}
