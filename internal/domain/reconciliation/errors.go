package reconciliation

import "errors"

var (
	ErrRunInProgress = errors.New("a reconciliation run for this cohort is already in progress")
	ErrRunNotFound   = errors.New("reconciliation run not found")
)
