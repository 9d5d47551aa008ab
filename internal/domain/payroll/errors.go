package payroll

import "errors"

var (
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrInvalidRateConfig    = errors.New("rate configuration contains negative values")
)
