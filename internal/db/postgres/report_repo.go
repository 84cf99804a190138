package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"parishfeed/internal/core/moderation"
)

type postgresReportRepo struct {
	db *sql.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sql.DB) moderation.Repository {
	return &postgresReportRepo{db: db}
}

const reportColumns = `
	id, post_id, reporter_id, reason, description,
	status, resolution, resolver_id, created_at, resolved_at
`

// Create inserts a report conditionally on the post still being reportable,
// so a remove landing between the service's visibility check and the insert
// cannot slip a report onto a removed post.
func (r *postgresReportRepo) Create(ctx context.Context, report *moderation.Report) error {
	query := `
		INSERT INTO reports (id, post_id, reporter_id, reason, description, status, resolution, created_at)
		SELECT $1, p.id, $3, $4, $5, $6, $7, $8
		FROM posts p
		WHERE p.id = $2 AND p.visibility <> 'removed'
	`

	result, err := r.db.ExecContext(
		ctx, query,
		report.ID, report.PostID, report.ReporterID, report.Reason,
		report.Description, report.Status, report.Resolution, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, report.PostID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check post existence: %w", err)
		}
		if !exists {
			return moderation.ErrPostNotFound
		}
		return moderation.ErrPostRemoved
	}

	return nil
}

func (r *postgresReportRepo) GetByID(ctx context.Context, id string) (*moderation.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	report, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, moderation.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

func (r *postgresReportRepo) ListPending(ctx context.Context, limit, offset int) ([]*moderation.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE status = 'pending'
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}
	defer rows.Close()

	result := make([]*moderation.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		result = append(result, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return result, nil
}

// Resolve claims a pending report with a conditional update so that two
// authorities acting on the same report cannot both win.
func (r *postgresReportRepo) Resolve(ctx context.Context, reportID, resolverID string, resolution moderation.Resolution) (*moderation.Report, error) {
	query := `
		UPDATE reports
		SET status = 'resolved', resolution = $1, resolver_id = $2, resolved_at = NOW()
		WHERE id = $3 AND status = 'pending'
		RETURNING ` + reportColumns

	report, err := scanReport(r.db.QueryRowContext(ctx, query, resolution, resolverID, reportID))
	if err == sql.ErrNoRows {
		// Either the report never existed or someone else already resolved it
		var exists bool
		if checkErr := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reports WHERE id = $1)`, reportID).Scan(&exists); checkErr != nil {
			return nil, fmt.Errorf("failed to check report existence: %w", checkErr)
		}
		if !exists {
			return nil, moderation.ErrReportNotFound
		}
		return nil, moderation.ErrAlreadyResolved
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report: %w", err)
	}

	return report, nil
}

func scanReport(s scanner) (*moderation.Report, error) {
	var report moderation.Report
	var description sql.NullString

	err := s.Scan(
		&report.ID, &report.PostID, &report.ReporterID, &report.Reason, &description,
		&report.Status, &report.Resolution, &report.ResolverID, &report.CreatedAt, &report.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Description = description.String
	return &report, nil
}
