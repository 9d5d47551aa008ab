package payroll

import "context"

// Service defines business logic for payroll computation and queries.
type Service interface {
	// ComputeSalary computes, persists and returns the salary for one
	// employee and period using the caller-supplied rates.
	ComputeSalary(ctx context.Context, req ComputeSalaryRequest) (SalaryResponse, error)

	// GetSalary retrieves a previously computed salary for an exact
	// employee/period combination (dates in "2006-01-02" format).
	GetSalary(ctx context.Context, employeeID, periodStart, periodEnd string) (SalaryResponse, error)

	// RepairLegacyBreakdowns backfills a synthesized breakdown onto every
	// salary record that predates structured breakdowns. Idempotent: a
	// second run finds nothing to update. Returns the number of records
	// updated.
	RepairLegacyBreakdowns(ctx context.Context) (int, error)
}
