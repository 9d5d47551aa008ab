package inventory

import (
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
)

type CreateAssignmentRequest struct {
	EmployeeID string  `json:"employee_id"`
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	AssignedAt *string `json:"assigned_at,omitempty"` // RFC3339, defaults to now
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.ProductID) {
		errs = append(errs, validator.ValidationError{Field: "product_id", Message: "is required"})
	}
	if r.Quantity < 0 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	ProductID         string  `json:"product_id"`
	AssignedAt        string  `json:"assigned_at"`
	Quantity          int     `json:"quantity"`
	Status            string  `json:"status"`
	ShortfallQuantity int     `json:"shortfall_quantity"`
}

type AssignmentFilter struct {
	EmployeeID *string
	ProductID  *string
	Status     *AssignmentStatus
	Page       int
	Limit      int
}

type ListAssignmentsResponse struct {
	Data       []AssignmentResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
