package reconciliation

import (
	"context"
	"time"
)

// RunRepository defines data access methods for the run ledger.
type RunRepository interface {
	// TryStart records a new in-flight run for the cohort date. Returns
	// ErrRunInProgress when another run for the same cohort has started but
	// not finished, so overlapping triggers cannot double-process a cohort.
	TryStart(ctx context.Context, cohortDate time.Time) (Run, error)

	// Finish stamps the run's final status and summary.
	Finish(ctx context.Context, id string, status RunStatus, summary RunSummary) error

	// GetLatestByCohortDate retrieves the most recent run for a cohort date.
	GetLatestByCohortDate(ctx context.Context, cohortDate time.Time) (Run, error)
}
