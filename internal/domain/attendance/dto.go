package attendance

import "github.com/shopspring/decimal"

type AttendanceResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Date        string          `json:"date"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
}

type ListAttendanceResponse struct {
	Data []AttendanceResponse `json:"data"`
}
