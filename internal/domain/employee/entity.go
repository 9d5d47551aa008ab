package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// Employee directory entry. Employee records are managed by the external
// workforce admin surface; the engine only needs identity and base salary.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Status       EmploymentStatus
	BaseSalary   *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
