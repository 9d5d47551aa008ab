package response

import (
	"errors"
	"net/http"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/employee"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/inventory"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/payroll"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/reconciliation"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Inventory domain errors
	case errors.Is(err, inventory.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, inventory.ErrAssignmentClosed):
		Conflict(w, "Assignment is already in a terminal status")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrInvalidRateConfig):
		ComputationError(w, "Rate configuration contains negative values")

	// Reconciliation domain errors
	case errors.Is(err, reconciliation.ErrRunInProgress):
		Conflict(w, "A reconciliation run for this cohort is already in progress")
	case errors.Is(err, reconciliation.ErrRunNotFound):
		NotFound(w, "Reconciliation run not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
