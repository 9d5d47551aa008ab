package payroll

import (
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RateConfigRequest struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	StandardDailyHours decimal.Decimal `json:"standard_daily_hours"`
	BonusPercent       decimal.Decimal `json:"bonus_percent"`
	UndertimePerHour   decimal.Decimal `json:"undertime_per_hour"`
	AbsencePerDay      decimal.Decimal `json:"absence_per_day"`
}

func (r RateConfigRequest) ToRateConfig() RateConfig {
	return RateConfig{
		BaseSalary:         r.BaseSalary,
		HourlyRate:         r.HourlyRate,
		OvertimeMultiplier: r.OvertimeMultiplier,
		StandardDailyHours: r.StandardDailyHours,
		BonusPercent:       r.BonusPercent,
		UndertimePerHour:   r.UndertimePerHour,
		AbsencePerDay:      r.AbsencePerDay,
	}
}

type ComputeSalaryRequest struct {
	EmployeeID  string            `json:"employee_id"`
	PeriodStart string            `json:"period_start"` // "2006-01-02"
	PeriodEnd   string            `json:"period_end"`   // "2006-01-02"
	Rates       RateConfigRequest `json:"rates"`
}

func (r *ComputeSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must not be after period_end"})
	}

	for field, v := range map[string]decimal.Decimal{
		"base_salary":          r.Rates.BaseSalary,
		"hourly_rate":          r.Rates.HourlyRate,
		"overtime_multiplier":  r.Rates.OvertimeMultiplier,
		"standard_daily_hours": r.Rates.StandardDailyHours,
		"bonus_percent":        r.Rates.BonusPercent,
		"undertime_per_hour":   r.Rates.UndertimePerHour,
		"absence_per_day":      r.Rates.AbsencePerDay,
	} {
		if v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SalaryResponse merges the flat SalaryRecord fields with the nested
// breakdown fields at the same level. Consumers depend on this flattening;
// do not nest the breakdown.
type SalaryResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Amount      decimal.Decimal `json:"amount"`
	Clamped     bool            `json:"clamped,omitempty"`

	BaseSalary         decimal.Decimal `json:"base_salary"`
	SalesTotal         decimal.Decimal `json:"sales_total"`
	BonusPercent       decimal.Decimal `json:"bonus_percent"`
	TotalWorkedHours   decimal.Decimal `json:"total_worked_hours"`
	OvertimeRate       decimal.Decimal `json:"overtime_rate"`
	UndertimeDeduction decimal.Decimal `json:"undertime_deduction"`
	AbsenceDeduction   decimal.Decimal `json:"absence_deduction"`
	AbsentDays         int             `json:"absent_days"`
}

type RepairBreakdownsResponse struct {
	UpdatedCount int `json:"updated_count"`
}
