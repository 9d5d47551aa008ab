package inventory

import (
	"context"
	"time"
)

// AssignmentRepository defines data access methods for the inventory ledger.
type AssignmentRepository interface {
	// Create inserts a new assignment in status assigned.
	Create(ctx context.Context, assignment Assignment) (Assignment, error)

	// GetByID retrieves an assignment by ID.
	GetByID(ctx context.Context, id string) (Assignment, error)

	// List retrieves assignments with filters and pagination.
	List(ctx context.Context, filter AssignmentFilter) ([]Assignment, int64, error)

	// FindOpenByCohortDay retrieves assignments whose assigned_at falls in
	// [dayStart, dayStart+24h) and whose status is still open.
	FindOpenByCohortDay(ctx context.Context, dayStart time.Time) ([]Assignment, error)

	// ListOpenCohortDays retrieves the distinct cohort days before the
	// given day start that still contain open assignments, oldest first.
	// These are the cohorts whose records failed or timed out in an
	// earlier run and are waiting to be retried.
	ListOpenCohortDays(ctx context.Context, before time.Time) ([]time.Time, error)

	// UpdateOutcome writes status and shortfall together in one statement so a
	// cancelled run never leaves a half-applied outcome. It only touches rows
	// that are still open; closing an already-terminal assignment returns
	// ErrAssignmentClosed.
	UpdateOutcome(ctx context.Context, id string, status AssignmentStatus, shortfallQuantity int) error
}
