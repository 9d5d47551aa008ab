package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/reconciliation"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type runRepository struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) reconciliation.RunRepository {
	return &runRepository{db: db}
}

// TryStart implements reconciliation.RunRepository. A partial unique index on
// (cohort_date) WHERE status = 'running' makes the insert fail when another
// run for the cohort is in flight, which serializes overlapping triggers.
func (r *runRepository) TryStart(ctx context.Context, cohortDate time.Time) (reconciliation.Run, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return reconciliation.Run{}, fmt.Errorf("failed to generate run id: %w", err)
	}

	query := `
		INSERT INTO reconciliation_runs (id, cohort_date, status, started_at)
		VALUES ($1, $2, 'running', NOW())
		ON CONFLICT (cohort_date) WHERE status = 'running' DO NOTHING
		RETURNING id, cohort_date, status, started_at
	`

	var run reconciliation.Run
	err = q.QueryRow(ctx, query, id.String(), cohortDate).Scan(
		&run.ID, &run.CohortDate, &run.Status, &run.StartedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return reconciliation.Run{}, reconciliation.ErrRunInProgress
		}
		return reconciliation.Run{}, fmt.Errorf("failed to start reconciliation run: %w", err)
	}

	return run, nil
}

// Finish implements reconciliation.RunRepository.
func (r *runRepository) Finish(ctx context.Context, id string, status reconciliation.RunStatus, summary reconciliation.RunSummary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reconciliation_runs
		SET status = $2, finished_at = NOW(),
			processed = $3, sold = $4, partially_sold = $5, expired = $6, failed = $7, oversold = $8
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status,
		summary.Processed, summary.Sold, summary.PartiallySold, summary.Expired, summary.Failed, summary.Oversold,
	)
	if err != nil {
		return fmt.Errorf("failed to finish reconciliation run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return reconciliation.ErrRunNotFound
	}

	return nil
}

// GetLatestByCohortDate implements reconciliation.RunRepository.
func (r *runRepository) GetLatestByCohortDate(ctx context.Context, cohortDate time.Time) (reconciliation.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, cohort_date, status, started_at, finished_at,
			   processed, sold, partially_sold, expired, failed, oversold
		FROM reconciliation_runs
		WHERE cohort_date = $1
		ORDER BY started_at DESC
		LIMIT 1
	`

	var run reconciliation.Run
	err := q.QueryRow(ctx, query, cohortDate).Scan(
		&run.ID, &run.CohortDate, &run.Status, &run.StartedAt, &run.FinishedAt,
		&run.Summary.Processed, &run.Summary.Sold, &run.Summary.PartiallySold,
		&run.Summary.Expired, &run.Summary.Failed, &run.Summary.Oversold,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return reconciliation.Run{}, reconciliation.ErrRunNotFound
		}
		return reconciliation.Run{}, fmt.Errorf("failed to get reconciliation run: %w", err)
	}

	return run, nil
}
