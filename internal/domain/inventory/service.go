package inventory

import "context"

// Service defines business logic for the inventory ledger's write path.
// Assignment outcomes are owned by the reconciliation engine, not by this
// service; it only creates and reads.
type Service interface {
	AssignInventory(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetAssignment(ctx context.Context, id string) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, filter AssignmentFilter) (ListAssignmentsResponse, error)
}
