package employee

import (
	"context"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/employee"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.Service {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// GetEmployee implements employee.Service.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if validator.IsEmpty(id) {
		return employee.EmployeeResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "is required"},
		}
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToEmployeeResponse(emp), nil
}

// ListActiveEmployees implements employee.Service.
func (s *EmployeeServiceImpl) ListActiveEmployees(ctx context.Context) (employee.ListEmployeesResponse, error) {
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		data = append(data, mapToEmployeeResponse(emp))
	}

	return employee.ListEmployeesResponse{Data: data}, nil
}

func mapToEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Status:       string(e.Status),
		BaseSalary:   e.BaseSalary,
	}
}
