package inventory

import (
	"time"
)

// AssignmentStatus enum
type AssignmentStatus string

const (
	StatusAssigned      AssignmentStatus = "assigned"
	StatusPartiallySold AssignmentStatus = "partially_sold"
	StatusSold          AssignmentStatus = "sold"
	StatusExpired       AssignmentStatus = "expired"
)

// IsOpen reports whether the assignment can still be reconciled.
func (s AssignmentStatus) IsOpen() bool {
	return s == StatusAssigned || s == StatusPartiallySold
}

// IsTerminal reports whether the status can never change again.
func (s AssignmentStatus) IsTerminal() bool {
	return s == StatusSold || s == StatusExpired
}

// Assignment - a unit of inventory handed to an employee for one day,
// tracked through its lifecycle by the reconciliation engine.
type Assignment struct {
	ID                string
	EmployeeID        string
	ProductID         string
	AssignedAt        time.Time
	Quantity          int
	Status            AssignmentStatus
	ShortfallQuantity int
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
}

// ResolveOutcome maps the quantity sold during an assignment's cohort day to
// the resulting status and shortfall. Shortfall never goes negative: selling
// more than was assigned still resolves to sold with zero shortfall.
func ResolveOutcome(quantity, soldQuantity int) (AssignmentStatus, int) {
	switch {
	case soldQuantity <= 0:
		return StatusExpired, quantity
	case soldQuantity < quantity:
		return StatusPartiallySold, quantity - soldQuantity
	default:
		return StatusSold, 0
	}
}
