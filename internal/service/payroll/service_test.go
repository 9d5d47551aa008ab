package payroll

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/employee"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/payroll"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/sales"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Status == employee.StatusActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []attendance.AttendanceRecord
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeSaleEventRepo struct {
	totalByEmployee map[string]decimal.Decimal
}

func (f *fakeSaleEventRepo) Create(ctx context.Context, e sales.SaleEvent) (sales.SaleEvent, error) {
	return e, nil
}

func (f *fakeSaleEventRepo) SumQuantity(ctx context.Context, employeeID, productID string, from, to time.Time) (int, error) {
	return 0, nil
}

func (f *fakeSaleEventRepo) SumValueByEmployee(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	if total, ok := f.totalByEmployee[employeeID]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

func (f *fakeSaleEventRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]sales.SaleEvent, error) {
	return nil, nil
}

type fakeSalaryRepo struct {
	records map[string]payroll.SalaryRecord
	nextID  int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: make(map[string]payroll.SalaryRecord)}
}

func (f *fakeSalaryRepo) key(employeeID string, start, end time.Time) string {
	return employeeID + "|" + start.Format("2006-01-02") + "|" + end.Format("2006-01-02")
}

func (f *fakeSalaryRepo) Upsert(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	k := f.key(record.EmployeeID, record.PeriodStart, record.PeriodEnd)
	if existing, ok := f.records[k]; ok {
		record.ID = existing.ID
	} else {
		f.nextID++
		record.ID = "rec-" + strconv.Itoa(f.nextID)
	}
	f.records[k] = record
	return record, nil
}

func (f *fakeSalaryRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.SalaryRecord, error) {
	record, ok := f.records[f.key(employeeID, periodStart, periodEnd)]
	if !ok {
		return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
	}
	return record, nil
}

func (f *fakeSalaryRepo) ListMissingBreakdown(ctx context.Context) ([]payroll.SalaryRecord, error) {
	var out []payroll.SalaryRecord
	for _, record := range f.records {
		if record.Breakdown == nil {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) SetBreakdown(ctx context.Context, id string, breakdown payroll.Breakdown) error {
	for k, record := range f.records {
		if record.ID == id && record.Breakdown == nil {
			record.Breakdown = &breakdown
			f.records[k] = record
		}
	}
	return nil
}

func activeEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:           id,
		EmployeeCode: "E-" + id,
		FullName:     "Test Employee",
		Status:       employee.StatusActive,
	}
}

func newTestService(salaryRepo *fakeSalaryRepo, employees *fakeEmployeeRepo, attendanceRepo *fakeAttendanceRepo, saleRepo *fakeSaleEventRepo) payroll.Service {
	return NewPayrollService(salaryRepo, employees, attendanceRepo, saleRepo, NewCalculator())
}

func computeRequest(employeeID string) payroll.ComputeSalaryRequest {
	return payroll.ComputeSalaryRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-06",
		Rates: payroll.RateConfigRequest{
			BaseSalary:         d("3000"),
			HourlyRate:         d("20"),
			OvertimeMultiplier: d("1.5"),
			StandardDailyHours: d("8"),
			BonusPercent:       d("0.1"),
			UndertimePerHour:   d("10"),
			AbsencePerDay:      d("50"),
		},
	}
}

func TestComputeSalary(t *testing.T) {
	salaryRepo := newFakeSalaryRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": activeEmployee("emp-1"),
	}}
	attendanceRepo := &fakeAttendanceRepo{records: []attendance.AttendanceRecord{
		record("2025-06-02", "8"), record("2025-06-03", "8"),
		record("2025-06-04", "8"), record("2025-06-05", "8"),
		record("2025-06-06", "8"),
	}}
	saleRepo := &fakeSaleEventRepo{totalByEmployee: map[string]decimal.Decimal{
		"emp-1": d("1000"),
	}}

	svc := newTestService(salaryRepo, employees, attendanceRepo, saleRepo)
	resp, err := svc.ComputeSalary(context.Background(), computeRequest("emp-1"))
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2025-06-02", resp.PeriodStart)
	assert.Equal(t, "2025-06-06", resp.PeriodEnd)
	assert.True(t, resp.Amount.Equal(d("3100")), "amount = %s", resp.Amount)
	assert.False(t, resp.Clamped)

	// The breakdown rides flattened on the same level as the record fields.
	assert.True(t, resp.BaseSalary.Equal(d("3000")))
	assert.True(t, resp.SalesTotal.Equal(d("1000")))
	assert.True(t, resp.TotalWorkedHours.Equal(d("40")))
	assert.Equal(t, 0, resp.AbsentDays)

	// Persisted alongside the response.
	saved, err := svc.GetSalary(context.Background(), "emp-1", "2025-06-02", "2025-06-06")
	require.NoError(t, err)
	assert.True(t, saved.Amount.Equal(d("3100")))
	assert.True(t, saved.BaseSalary.Equal(d("3000")))
}

func TestComputeSalary_Recompute_Overwrites(t *testing.T) {
	salaryRepo := newFakeSalaryRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": activeEmployee("emp-1"),
	}}
	attendanceRepo := &fakeAttendanceRepo{}
	saleRepo := &fakeSaleEventRepo{totalByEmployee: map[string]decimal.Decimal{}}

	svc := newTestService(salaryRepo, employees, attendanceRepo, saleRepo)

	first, err := svc.ComputeSalary(context.Background(), computeRequest("emp-1"))
	require.NoError(t, err)

	// New sales arrive, recompute replaces the stored amount.
	saleRepo.totalByEmployee["emp-1"] = d("2000")
	second, err := svc.ComputeSalary(context.Background(), computeRequest("emp-1"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Amount.GreaterThan(first.Amount))

	saved, err := svc.GetSalary(context.Background(), "emp-1", "2025-06-02", "2025-06-06")
	require.NoError(t, err)
	assert.True(t, saved.Amount.Equal(second.Amount))
}

func TestComputeSalary_UnknownEmployee(t *testing.T) {
	svc := newTestService(newFakeSalaryRepo(), &fakeEmployeeRepo{employees: map[string]employee.Employee{}}, &fakeAttendanceRepo{}, &fakeSaleEventRepo{})

	_, err := svc.ComputeSalary(context.Background(), computeRequest("ghost"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestComputeSalary_InvalidPeriod(t *testing.T) {
	svc := newTestService(newFakeSalaryRepo(), &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": activeEmployee("emp-1"),
	}}, &fakeAttendanceRepo{}, &fakeSaleEventRepo{})

	req := computeRequest("emp-1")
	req.PeriodStart = "2025-06-10"
	req.PeriodEnd = "2025-06-02"

	_, err := svc.ComputeSalary(context.Background(), req)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "period_start")
}

func TestGetSalary_NotFound(t *testing.T) {
	svc := newTestService(newFakeSalaryRepo(), &fakeEmployeeRepo{}, &fakeAttendanceRepo{}, &fakeSaleEventRepo{})

	_, err := svc.GetSalary(context.Background(), "emp-1", "2025-06-02", "2025-06-06")
	assert.ErrorIs(t, err, payroll.ErrSalaryRecordNotFound)
}

func TestRepairLegacyBreakdowns(t *testing.T) {
	salaryRepo := newFakeSalaryRepo()
	start := day("2025-05-01")
	end := day("2025-05-31")
	salaryRepo.records["emp-1|2025-05-01|2025-05-31"] = payroll.SalaryRecord{
		ID:          "legacy-1",
		EmployeeID:  "emp-1",
		PeriodStart: start,
		PeriodEnd:   end,
		Amount:      d("5000"),
	}
	salaryRepo.records["emp-2|2025-05-01|2025-05-31"] = payroll.SalaryRecord{
		ID:          "legacy-2",
		EmployeeID:  "emp-2",
		PeriodStart: start,
		PeriodEnd:   end,
		Amount:      d("4200"),
	}

	svc := newTestService(salaryRepo, &fakeEmployeeRepo{}, &fakeAttendanceRepo{}, &fakeSaleEventRepo{})

	updated, err := svc.RepairLegacyBreakdowns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	// The synthesized breakdown carries the full amount as base salary.
	repaired, err := svc.GetSalary(context.Background(), "emp-1", "2025-05-01", "2025-05-31")
	require.NoError(t, err)
	assert.True(t, repaired.Amount.Equal(d("5000")))
	assert.True(t, repaired.BaseSalary.Equal(d("5000")))
	assert.True(t, repaired.SalesTotal.IsZero())
	assert.Equal(t, 0, repaired.AbsentDays)

	// Idempotent: a second pass finds nothing left to repair.
	updated, err = svc.RepairLegacyBreakdowns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}
