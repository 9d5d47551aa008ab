package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/employee"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/payroll"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/sales"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	salaryRepo     payroll.SalaryRecordRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	saleRepo       sales.SaleEventRepository
	calculator     *Calculator
}

func NewPayrollService(
	salaryRepo payroll.SalaryRecordRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	saleRepo sales.SaleEventRepository,
	calculator *Calculator,
) payroll.Service {
	return &PayrollServiceImpl{
		salaryRepo:     salaryRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		saleRepo:       saleRepo,
		calculator:     calculator,
	}
}

// ComputeSalary implements payroll.Service.
func (s *PayrollServiceImpl) ComputeSalary(ctx context.Context, req payroll.ComputeSalaryRequest) (payroll.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.SalaryResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	records, err := s.attendanceRepo.ListByEmployee(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	// Period dates are inclusive; sale timestamps are half-open.
	salesTotal, err := s.saleRepo.SumValueByEmployee(ctx, req.EmployeeID, periodStart, periodEnd.AddDate(0, 0, 1))
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	result, err := s.calculator.Calculate(req.Rates.ToRateConfig(), records, salesTotal, periodStart, periodEnd)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	breakdown := result.Breakdown
	record := payroll.SalaryRecord{
		EmployeeID:  req.EmployeeID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Amount:      result.Amount,
		Breakdown:   &breakdown,
	}

	saved, err := s.salaryRepo.Upsert(ctx, record)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	resp := mapToSalaryResponse(saved)
	resp.Clamped = result.Clamped
	return resp, nil
}

// GetSalary implements payroll.Service.
func (s *PayrollServiceImpl) GetSalary(ctx context.Context, employeeID, periodStart, periodEnd string) (payroll.SalaryResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, startOK := validator.IsValidDate(periodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(periodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must not be after period_end"})
	}
	if len(errs) > 0 {
		return payroll.SalaryResponse{}, errs
	}

	record, err := s.salaryRepo.GetByEmployeePeriod(ctx, employeeID, start, end)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	return mapToSalaryResponse(record), nil
}

// RepairLegacyBreakdowns implements payroll.Service. Historical salary
// records predate structured breakdowns; each one gets a synthesized
// breakdown carrying the full amount as base salary.
func (s *PayrollServiceImpl) RepairLegacyBreakdowns(ctx context.Context) (int, error) {
	records, err := s.salaryRepo.ListMissingBreakdown(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, record := range records {
		breakdown := payroll.Breakdown{
			BaseSalary:         record.Amount,
			SalesTotal:         decimal.Zero,
			BonusPercent:       decimal.Zero,
			TotalWorkedHours:   decimal.Zero,
			OvertimeRate:       decimal.Zero,
			UndertimeDeduction: decimal.Zero,
			AbsenceDeduction:   decimal.Zero,
			AbsentDays:         0,
		}

		if err := s.salaryRepo.SetBreakdown(ctx, record.ID, breakdown); err != nil {
			slog.Error("failed to repair salary record breakdown",
				"salary_record_id", record.ID,
				"employee_id", record.EmployeeID,
				"period_start", record.PeriodStart.Format("2006-01-02"),
				"error", err)
			continue
		}
		updated++
	}

	slog.Info("legacy breakdown repair finished", "candidates", len(records), "updated", updated)
	return updated, nil
}

// mapToSalaryResponse flattens the record and its breakdown into one level.
// Consumers depend on the merged shape.
func mapToSalaryResponse(record payroll.SalaryRecord) payroll.SalaryResponse {
	resp := payroll.SalaryResponse{
		ID:          record.ID,
		EmployeeID:  record.EmployeeID,
		PeriodStart: record.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   record.PeriodEnd.Format("2006-01-02"),
		Amount:      record.Amount,
	}
	if record.Breakdown != nil {
		resp.BaseSalary = record.Breakdown.BaseSalary
		resp.SalesTotal = record.Breakdown.SalesTotal
		resp.BonusPercent = record.Breakdown.BonusPercent
		resp.TotalWorkedHours = record.Breakdown.TotalWorkedHours
		resp.OvertimeRate = record.Breakdown.OvertimeRate
		resp.UndertimeDeduction = record.Breakdown.UndertimeDeduction
		resp.AbsenceDeduction = record.Breakdown.AbsenceDeduction
		resp.AbsentDays = record.Breakdown.AbsentDays
	}
	return resp
}
