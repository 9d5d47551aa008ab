package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleEvent - immutable record of a quantity sold by an employee.
// Events are append-only; reconciliation and payroll only ever read them.
type SaleEvent struct {
	ID         string
	EmployeeID string
	ProductID  string
	Quantity   int
	SaleValue  decimal.Decimal
	OccurredAt time.Time
	CreatedAt  time.Time
}
