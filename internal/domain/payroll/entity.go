package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Breakdown - structured decomposition of a salary amount. Attached 1:1 to a
// SalaryRecord. The record's Amount stays authoritative; the breakdown is
// advisory, because legacy records carry synthesized breakdowns whose
// components cannot be made to re-sum to the historical amount.
type Breakdown struct {
	BaseSalary         decimal.Decimal
	SalesTotal         decimal.Decimal
	BonusPercent       decimal.Decimal
	TotalWorkedHours   decimal.Decimal
	OvertimeRate       decimal.Decimal
	UndertimeDeduction decimal.Decimal
	AbsenceDeduction   decimal.Decimal
	AbsentDays         int
}

// SalaryRecord - computed salary for one employee over one pay period.
type SalaryRecord struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      decimal.Decimal
	Breakdown   *Breakdown
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RateConfig - rate and deduction rules supplied by the caller for one
// computation. Nothing here is read from global state.
type RateConfig struct {
	BaseSalary         decimal.Decimal
	HourlyRate         decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	// StandardDailyHours is the threshold above which an attended day's
	// hours count as overtime.
	StandardDailyHours decimal.Decimal
	// BonusPercent is a fraction, e.g. 0.05 for a 5% commission on sales.
	BonusPercent     decimal.Decimal
	UndertimePerHour decimal.Decimal
	AbsencePerDay    decimal.Decimal
}
