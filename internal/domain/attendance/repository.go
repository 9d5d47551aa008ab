package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines read access to attendance records.
type AttendanceRepository interface {
	// ListByEmployee retrieves attendance records for an employee with
	// date in [from, to], oldest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceRecord, error)
}
