package attendance

import (
	"context"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/employee"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.Service {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// ListAttendance implements attendance.Service.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, employeeID, fromDate, toDate string) (attendance.ListAttendanceResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	from, fromOK := validator.IsValidDate(fromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	to, toOK := validator.IsValidDate(toDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if fromOK && toOK && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must not be after to"})
	}
	if len(errs) > 0 {
		return attendance.ListAttendanceResponse{}, errs
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, attendance.AttendanceResponse{
			ID:          rec.ID,
			EmployeeID:  rec.EmployeeID,
			Date:        rec.Date.Format(time.DateOnly),
			HoursWorked: rec.HoursWorked,
		})
	}

	return attendance.ListAttendanceResponse{Data: data}, nil
}
