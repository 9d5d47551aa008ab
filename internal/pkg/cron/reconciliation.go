package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/config"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/reconciliation"
)

// ReconciliationJobs registers the daily reconciliation batch.
type ReconciliationJobs struct {
	reconciliationService reconciliation.Service
	cfg                   config.JobsConfig
}

func NewReconciliationJobs(
	reconciliationService reconciliation.Service,
	cfg config.JobsConfig,
) *ReconciliationJobs {
	return &ReconciliationJobs{
		reconciliationService: reconciliationService,
		cfg:                   cfg,
	}
}

// Register adds the daily job to the scheduler. It runs shortly after
// midnight UTC and reconciles the just-elapsed day.
func (j *ReconciliationJobs) Register(scheduler *Scheduler) error {
	return scheduler.AddJob("daily-reconciliation", j.cfg.ReconcileCron, j.runDaily)
}

func (j *ReconciliationJobs) runDaily() error {
	ctx := context.Background()

	cohortDate := time.Now().UTC().AddDate(0, 0, -1)

	run, err := j.reconciliationService.ReconcileDay(ctx, cohortDate)
	if err != nil && !errors.Is(err, reconciliation.ErrRunInProgress) {
		return err
	}
	if err != nil {
		// Another trigger beat us to this cohort; the sweep below still runs.
		slog.Info("reconciliation already running for cohort, skipping",
			"cohort_date", cohortDate.Format(time.DateOnly))
	} else {
		slog.Info("daily reconciliation finished",
			"cohort_date", run.CohortDate.Format(time.DateOnly),
			"status", run.Status,
			"processed", run.Summary.Processed,
			"failed", run.Summary.Failed,
		)
	}

	// Cohorts before yesterday that still hold open assignments carry
	// records that failed or timed out in an earlier run; rerun them so
	// retry-by-rerun actually happens on schedule.
	retried, err := j.reconciliationService.ReconcileOutstanding(ctx, cohortDate)
	if err != nil {
		return err
	}
	for _, r := range retried {
		slog.Info("outstanding cohort reconciled",
			"cohort_date", r.CohortDate.Format(time.DateOnly),
			"status", r.Status,
			"processed", r.Summary.Processed,
			"failed", r.Summary.Failed,
		)
	}
	return nil
}
