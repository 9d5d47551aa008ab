package reconciliation

import (
	"time"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run - ledger entry for one reconciliation of one cohort day. Doubles as
// the idempotency marker: at most one run per cohort may be in-flight.
type Run struct {
	ID         string
	CohortDate time.Time
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	Summary    RunSummary
}

// RunSummary counts per-assignment outcomes of a run. Failed records stay
// open and are retried by the next scheduled run.
type RunSummary struct {
	Processed     int
	Sold          int
	PartiallySold int
	Expired       int
	Failed        int
	// Oversold counts assignments whose same-day sales exceeded the
	// assigned quantity. They still resolve to sold with zero shortfall;
	// the count is surfaced so the oversell can be investigated upstream.
	Oversold int
}
