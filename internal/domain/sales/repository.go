package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SaleEventRepository defines data access methods for the sales event log.
type SaleEventRepository interface {
	// Create appends a new sale event.
	Create(ctx context.Context, event SaleEvent) (SaleEvent, error)

	// SumQuantity sums quantities sold by an employee for a product with
	// occurred_at in [from, to).
	SumQuantity(ctx context.Context, employeeID, productID string, from, to time.Time) (int, error)

	// SumValueByEmployee sums sale values for an employee with occurred_at
	// in [from, to).
	SumValueByEmployee(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)

	// ListByEmployee retrieves an employee's sale events with occurred_at
	// in [from, to), oldest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]SaleEvent, error)
}
