package sales

import (
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordSaleRequest struct {
	EmployeeID string          `json:"employee_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	SaleValue  decimal.Decimal `json:"sale_value"`
	OccurredAt *string         `json:"occurred_at,omitempty"` // RFC3339, defaults to now
}

func (r *RecordSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.ProductID) {
		errs = append(errs, validator.ValidationError{Field: "product_id", Message: "is required"})
	}
	if r.Quantity <= 0 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be positive"})
	}
	if r.SaleValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "sale_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaleEventResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	SaleValue  decimal.Decimal `json:"sale_value"`
	OccurredAt string          `json:"occurred_at"`
}

type ListSalesResponse struct {
	Data []SaleEventResponse `json:"data"`
}
