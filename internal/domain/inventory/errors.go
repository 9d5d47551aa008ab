package inventory

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAssignmentClosed   = errors.New("assignment is already in a terminal status")
)
