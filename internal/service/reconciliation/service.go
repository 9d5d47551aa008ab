package reconciliation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/inventory"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/reconciliation"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/sales"
	"golang.org/x/sync/errgroup"
)

// Transactor runs a function inside a storage transaction so the
// read-aggregate-write cycle for one assignment is isolated from sale events
// arriving mid-aggregation.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ReconciliationServiceImpl struct {
	tx             Transactor
	assignmentRepo inventory.AssignmentRepository
	saleRepo       sales.SaleEventRepository
	runRepo        reconciliation.RunRepository
	workerLimit    int
	recordTimeout  time.Duration
}

func NewReconciliationService(
	tx Transactor,
	assignmentRepo inventory.AssignmentRepository,
	saleRepo sales.SaleEventRepository,
	runRepo reconciliation.RunRepository,
	workerLimit int,
	recordTimeout time.Duration,
) reconciliation.Service {
	if workerLimit < 1 {
		workerLimit = 1
	}
	return &ReconciliationServiceImpl{
		tx:             tx,
		assignmentRepo: assignmentRepo,
		saleRepo:       saleRepo,
		runRepo:        runRepo,
		workerLimit:    workerLimit,
		recordTimeout:  recordTimeout,
	}
}

// ReconcileDay implements reconciliation.Service.
func (s *ReconciliationServiceImpl) ReconcileDay(ctx context.Context, cohortDate time.Time) (reconciliation.Run, error) {
	dayStart := truncateToDay(cohortDate)

	// The run ledger row is the idempotency marker: a second trigger for the
	// same cohort while this one is in flight gets ErrRunInProgress instead
	// of racing on in-flight sales changes.
	run, err := s.runRepo.TryStart(ctx, dayStart)
	if err != nil {
		return reconciliation.Run{}, err
	}

	// Finishing the run must survive cancellation of the batch context,
	// otherwise the running marker is never released and the cohort is
	// locked out of every later trigger.
	finishCtx := context.WithoutCancel(ctx)

	open, err := s.assignmentRepo.FindOpenByCohortDay(ctx, dayStart)
	if err != nil {
		_ = s.runRepo.Finish(finishCtx, run.ID, reconciliation.RunStatusFailed, run.Summary)
		return reconciliation.Run{}, err
	}

	var mu sync.Mutex
	var summary reconciliation.RunSummary

	// Per-assignment work is independent, so it fans out across a bounded
	// pool. A worker never returns an error: a failed record is counted,
	// left open and retried by the next scheduled run.
	var g errgroup.Group
	g.SetLimit(s.workerLimit)

	for _, assignment := range open {
		assignment := assignment
		g.Go(func() error {
			outcome, oversold, err := s.reconcileOne(ctx, dayStart, assignment)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				slog.Error("failed to reconcile assignment",
					"assignment_id", assignment.ID,
					"employee_id", assignment.EmployeeID,
					"product_id", assignment.ProductID,
					"cohort_date", dayStart.Format("2006-01-02"),
					"error", err)
				return nil
			}

			summary.Processed++
			switch outcome {
			case inventory.StatusSold:
				summary.Sold++
			case inventory.StatusPartiallySold:
				summary.PartiallySold++
			case inventory.StatusExpired:
				summary.Expired++
			}
			if oversold {
				summary.Oversold++
			}
			return nil
		})
	}
	_ = g.Wait()

	status := reconciliation.RunStatusCompleted
	if ctx.Err() != nil {
		// Shutdown mid-batch: per-record transactions kept every persisted
		// outcome consistent, the rest stays open for the next run.
		status = reconciliation.RunStatusFailed
	}

	if err := s.runRepo.Finish(finishCtx, run.ID, status, summary); err != nil {
		return reconciliation.Run{}, err
	}

	slog.Info("reconciliation run finished",
		"cohort_date", dayStart.Format("2006-01-02"),
		"status", status,
		"processed", summary.Processed,
		"sold", summary.Sold,
		"partially_sold", summary.PartiallySold,
		"expired", summary.Expired,
		"failed", summary.Failed,
		"oversold", summary.Oversold)

	run.Status = status
	run.Summary = summary
	return run, nil
}

// reconcileOne aggregates one assignment's same-day sales and persists the
// resulting outcome, all inside one transaction and one timeout budget.
func (s *ReconciliationServiceImpl) reconcileOne(ctx context.Context, dayStart time.Time, assignment inventory.Assignment) (inventory.AssignmentStatus, bool, error) {
	rctx, cancel := context.WithTimeout(ctx, s.recordTimeout)
	defer cancel()

	var status inventory.AssignmentStatus
	var oversold bool

	err := s.tx.WithinTransaction(rctx, func(txCtx context.Context) error {
		sold, err := s.saleRepo.SumQuantity(txCtx, assignment.EmployeeID, assignment.ProductID, dayStart, dayStart.Add(24*time.Hour))
		if err != nil {
			return err
		}

		var shortfall int
		status, shortfall = inventory.ResolveOutcome(assignment.Quantity, sold)

		if sold > assignment.Quantity {
			oversold = true
			slog.Warn("assignment oversold",
				"assignment_id", assignment.ID,
				"employee_id", assignment.EmployeeID,
				"product_id", assignment.ProductID,
				"quantity", assignment.Quantity,
				"sold_quantity", sold)
		}

		err = s.assignmentRepo.UpdateOutcome(txCtx, assignment.ID, status, shortfall)
		if errors.Is(err, inventory.ErrAssignmentClosed) {
			// Another run already closed it; fine either way, the
			// transition function is deterministic on the same sales.
			return nil
		}
		return err
	})
	if err != nil {
		return "", false, err
	}

	return status, oversold, nil
}

// ReconcileOutstanding implements reconciliation.Service. The daily scan
// window only covers one cohort, so records left open by a failed or
// timed-out run would never be picked up again without this sweep.
func (s *ReconciliationServiceImpl) ReconcileOutstanding(ctx context.Context, before time.Time) ([]reconciliation.Run, error) {
	days, err := s.assignmentRepo.ListOpenCohortDays(ctx, truncateToDay(before))
	if err != nil {
		return nil, err
	}

	var runs []reconciliation.Run
	for _, day := range days {
		run, err := s.ReconcileDay(ctx, day)
		if err != nil {
			if errors.Is(err, reconciliation.ErrRunInProgress) {
				continue
			}
			slog.Error("failed to reconcile outstanding cohort",
				"cohort_date", day.Format("2006-01-02"),
				"error", err)
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// TriggerRun implements reconciliation.Service.
func (s *ReconciliationServiceImpl) TriggerRun(ctx context.Context, req reconciliation.TriggerRunRequest) (reconciliation.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.RunResponse{}, err
	}

	cohortDate := time.Now().UTC()
	if req.CohortDate != nil {
		parsed, _ := time.Parse("2006-01-02", *req.CohortDate)
		cohortDate = parsed
	}

	run, err := s.ReconcileDay(ctx, cohortDate)
	if err != nil {
		return reconciliation.RunResponse{}, err
	}

	return mapToRunResponse(run), nil
}

// GetRun implements reconciliation.Service.
func (s *ReconciliationServiceImpl) GetRun(ctx context.Context, cohortDate string) (reconciliation.RunResponse, error) {
	parsed, err := time.Parse("2006-01-02", cohortDate)
	if err != nil {
		return reconciliation.RunResponse{}, reconciliation.ErrRunNotFound
	}

	run, err := s.runRepo.GetLatestByCohortDate(ctx, truncateToDay(parsed))
	if err != nil {
		return reconciliation.RunResponse{}, err
	}

	return mapToRunResponse(run), nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToRunResponse(run reconciliation.Run) reconciliation.RunResponse {
	resp := reconciliation.RunResponse{
		ID:            run.ID,
		CohortDate:    run.CohortDate.Format("2006-01-02"),
		Status:        string(run.Status),
		StartedAt:     run.StartedAt.Format(time.RFC3339),
		Processed:     run.Summary.Processed,
		Sold:          run.Summary.Sold,
		PartiallySold: run.Summary.PartiallySold,
		Expired:       run.Summary.Expired,
		Failed:        run.Summary.Failed,
		Oversold:      run.Summary.Oversold,
	}
	if run.FinishedAt != nil {
		finished := run.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &finished
	}
	return resp
}
