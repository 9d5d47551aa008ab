package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/payroll"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayrollService struct {
	salary payroll.SalaryResponse
	err    error
}

func (s *stubPayrollService) ComputeSalary(ctx context.Context, req payroll.ComputeSalaryRequest) (payroll.SalaryResponse, error) {
	return s.salary, s.err
}

func (s *stubPayrollService) GetSalary(ctx context.Context, employeeID, periodStart, periodEnd string) (payroll.SalaryResponse, error) {
	return s.salary, s.err
}

func (s *stubPayrollService) RepairLegacyBreakdowns(ctx context.Context) (int, error) {
	return 0, s.err
}

func TestPayrollHandler_GetSalary_FlattenedBody(t *testing.T) {
	svc := &stubPayrollService{
		salary: payroll.SalaryResponse{
			ID:                 "rec-1",
			EmployeeID:         "emp-1",
			PeriodStart:        "2025-06-02",
			PeriodEnd:          "2025-06-06",
			Amount:             decimal.RequireFromString("3100"),
			BaseSalary:         decimal.RequireFromString("3000"),
			SalesTotal:         decimal.RequireFromString("1000"),
			BonusPercent:       decimal.RequireFromString("0.1"),
			TotalWorkedHours:   decimal.RequireFromString("40"),
			OvertimeRate:       decimal.RequireFromString("30"),
			UndertimeDeduction: decimal.Zero,
			AbsenceDeduction:   decimal.Zero,
			AbsentDays:         0,
		},
	}
	handler := NewPayrollHandler(svc)

	r := chi.NewRouter()
	r.Get("/payroll/salary/{employeeID}", handler.GetSalary)

	req := httptest.NewRequest(http.MethodGet, "/payroll/salary/emp-1?period_start=2025-06-02&period_end=2025-06-06", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)

	// Record fields and breakdown fields sit on the same JSON level; there
	// is no nested breakdown object.
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body.Data, &data))

	for _, field := range []string{
		"id", "employee_id", "period_start", "period_end", "amount",
		"base_salary", "sales_total", "bonus_percent", "total_worked_hours",
		"overtime_rate", "undertime_deduction", "absence_deduction", "absent_days",
	} {
		assert.Contains(t, data, field)
	}
	assert.NotContains(t, data, "breakdown")
}
