package employee

import "github.com/shopspring/decimal"

type EmployeeResponse struct {
	ID           string           `json:"id"`
	EmployeeCode string           `json:"employee_code"`
	FullName     string           `json:"full_name"`
	Status       string           `json:"status"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
}

type ListEmployeesResponse struct {
	Data []EmployeeResponse `json:"data"`
}
