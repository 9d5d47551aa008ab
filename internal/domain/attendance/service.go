package attendance

import "context"

// Service defines read-only business logic for attendance records.
type Service interface {
	// ListAttendance lists an employee's attendance records for a date
	// range (inclusive dates, "2006-01-02" format).
	ListAttendance(ctx context.Context, employeeID, fromDate, toDate string) (ListAttendanceResponse, error)
}
