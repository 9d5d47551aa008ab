package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord - per-employee per-day worked hours. Written by the
// external attendance collaborator; this backend only reads it.
type AttendanceRecord struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	HoursWorked decimal.Decimal
	CreatedAt   time.Time
}
