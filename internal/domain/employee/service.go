package employee

import "context"

// Service defines read-only business logic for the employee directory.
type Service interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListActiveEmployees(ctx context.Context) (ListEmployeesResponse, error)
}
