package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/payroll"
	"github.com/fieldsquad/fieldops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)
	RepairBreakdowns(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Compute implements PayrollHandler.
func (h *payrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.ComputeSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary computed", result)
}

// GetSalary implements PayrollHandler.
func (h *payrollHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	periodStart := r.URL.Query().Get("period_start")
	periodEnd := r.URL.Query().Get("period_end")

	result, err := h.payrollService.GetSalary(r.Context(), employeeID, periodStart, periodEnd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RepairBreakdowns implements PayrollHandler.
func (h *payrollHandlerImpl) RepairBreakdowns(w http.ResponseWriter, r *http.Request) {
	updated, err := h.payrollService.RepairLegacyBreakdowns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Legacy breakdowns repaired", payroll.RepairBreakdownsResponse{
		UpdatedCount: updated,
	})
}
