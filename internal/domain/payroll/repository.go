package payroll

import (
	"context"
	"time"
)

// SalaryRecordRepository defines data access methods for salary records.
type SalaryRecordRepository interface {
	// Upsert inserts the record or, when one already exists for the same
	// employee and period, replaces its amount and breakdown.
	Upsert(ctx context.Context, record SalaryRecord) (SalaryRecord, error)

	// GetByEmployeePeriod retrieves the record for an exact employee/period
	// combination.
	GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (SalaryRecord, error)

	// ListMissingBreakdown retrieves all records that have no breakdown yet.
	ListMissingBreakdown(ctx context.Context) ([]SalaryRecord, error)

	// SetBreakdown attaches a breakdown to a record that has none. Records
	// that already carry one are left untouched.
	SetBreakdown(ctx context.Context, id string, breakdown Breakdown) error
}
