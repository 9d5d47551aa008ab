package reconciliation

import (
	"context"
	"time"
)

// Service defines the reconciliation engine's trigger and query surface.
type Service interface {
	// ReconcileDay reconciles every still-open assignment of the cohort day
	// against that day's sales. Safe to re-run: with unchanged sales a
	// repeat produces the same final assignment state.
	ReconcileDay(ctx context.Context, cohortDate time.Time) (Run, error)

	// ReconcileOutstanding re-runs reconciliation for every cohort day
	// before the given day that still holds open assignments, so records
	// that failed or timed out in an earlier run are eventually retried.
	ReconcileOutstanding(ctx context.Context, before time.Time) ([]Run, error)

	// TriggerRun is the administrative entry point; cohort date defaults
	// to today (UTC).
	TriggerRun(ctx context.Context, req TriggerRunRequest) (RunResponse, error)

	// GetRun retrieves the latest run for a cohort date ("2006-01-02").
	GetRun(ctx context.Context, cohortDate string) (RunResponse, error)
}
