package payroll

import (
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Calculator derives a salary breakdown from attendance, sales and rates.
// It is pure: no clock reads, no storage access, and identical inputs always
// produce identical output.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

type CalculationResult struct {
	Breakdown payroll.Breakdown
	Amount    decimal.Decimal
	// Clamped is set when deductions exceeded earnings and the amount was
	// held at zero instead of going negative.
	Clamped bool
}

func (c *Calculator) Calculate(
	cfg payroll.RateConfig,
	records []attendance.AttendanceRecord,
	salesTotal decimal.Decimal,
	periodStart, periodEnd time.Time,
) (CalculationResult, error) {
	for _, v := range []decimal.Decimal{
		cfg.BaseSalary, cfg.HourlyRate, cfg.OvertimeMultiplier,
		cfg.StandardDailyHours, cfg.BonusPercent, cfg.UndertimePerHour, cfg.AbsencePerDay,
	} {
		if v.IsNegative() {
			return CalculationResult{}, payroll.ErrInvalidRateConfig
		}
	}

	totalWorked := decimal.Zero
	attendedDays := make(map[string]bool)
	for _, rec := range records {
		totalWorked = totalWorked.Add(rec.HoursWorked)
		attendedDays[rec.Date.Format("2006-01-02")] = true
	}

	absentDays := 0
	for day := periodStart; !day.After(periodEnd); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if !attendedDays[day.Format("2006-01-02")] {
			absentDays++
		}
	}

	// Hours above the standard for the days actually attended count as
	// overtime; hours below it count as undertime. Absent days are handled
	// separately via the per-day penalty, never double-counted as undertime.
	standardHours := cfg.StandardDailyHours.Mul(decimal.NewFromInt(int64(len(attendedDays))))
	overtimeRate := cfg.HourlyRate.Mul(cfg.OvertimeMultiplier)

	overtimePay := decimal.Zero
	undertimeDeduction := decimal.Zero
	if totalWorked.GreaterThan(standardHours) {
		overtimePay = totalWorked.Sub(standardHours).Mul(overtimeRate)
	} else {
		undertimeDeduction = standardHours.Sub(totalWorked).Mul(cfg.UndertimePerHour)
	}

	absenceDeduction := cfg.AbsencePerDay.Mul(decimal.NewFromInt(int64(absentDays)))
	bonus := salesTotal.Mul(cfg.BonusPercent)

	amount := cfg.BaseSalary.Add(bonus).Add(overtimePay).Sub(undertimeDeduction).Sub(absenceDeduction)

	clamped := false
	if amount.IsNegative() {
		amount = decimal.Zero
		clamped = true
	}

	return CalculationResult{
		Breakdown: payroll.Breakdown{
			BaseSalary:         cfg.BaseSalary,
			SalesTotal:         salesTotal,
			BonusPercent:       cfg.BonusPercent,
			TotalWorkedHours:   totalWorked,
			OvertimeRate:       overtimeRate,
			UndertimeDeduction: undertimeDeduction,
			AbsenceDeduction:   absenceDeduction,
			AbsentDays:         absentDays,
		},
		Amount:  amount,
		Clamped: clamped,
	}, nil
}
