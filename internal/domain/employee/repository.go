package employee

import "context"

// EmployeeRepository defines read access to the employee directory.
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID. Returns ErrEmployeeNotFound when
	// the employee does not exist.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActive retrieves all employees with active status, ordered by
	// employee code.
	GetActive(ctx context.Context) ([]Employee, error)
}
