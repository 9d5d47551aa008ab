package inventory

import (
	"context"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/employee"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/inventory"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
)

type InventoryServiceImpl struct {
	assignmentRepo inventory.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
}

func NewInventoryService(
	assignmentRepo inventory.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
) inventory.Service {
	return &InventoryServiceImpl{
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
	}
}

// AssignInventory implements inventory.Service.
func (s *InventoryServiceImpl) AssignInventory(ctx context.Context, req inventory.CreateAssignmentRequest) (inventory.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.AssignmentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return inventory.AssignmentResponse{}, err
	}

	assignedAt := time.Now().UTC()
	if req.AssignedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.AssignedAt)
		if err != nil {
			return inventory.AssignmentResponse{}, validator.ValidationErrors{
				{Field: "assigned_at", Message: "must be a valid RFC3339 timestamp"},
			}
		}
		assignedAt = parsed.UTC()
	}

	assignment := inventory.Assignment{
		EmployeeID:        req.EmployeeID,
		ProductID:         req.ProductID,
		AssignedAt:        assignedAt,
		Quantity:          req.Quantity,
		Status:            inventory.StatusAssigned,
		ShortfallQuantity: 0,
	}

	created, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return inventory.AssignmentResponse{}, err
	}

	return mapToAssignmentResponse(created), nil
}

// GetAssignment implements inventory.Service.
func (s *InventoryServiceImpl) GetAssignment(ctx context.Context, id string) (inventory.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return inventory.AssignmentResponse{}, err
	}
	return mapToAssignmentResponse(assignment), nil
}

// ListAssignments implements inventory.Service.
func (s *InventoryServiceImpl) ListAssignments(ctx context.Context, filter inventory.AssignmentFilter) (inventory.ListAssignmentsResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	assignments, total, err := s.assignmentRepo.List(ctx, filter)
	if err != nil {
		return inventory.ListAssignmentsResponse{}, err
	}

	data := make([]inventory.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		data = append(data, mapToAssignmentResponse(a))
	}

	return inventory.ListAssignmentsResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func mapToAssignmentResponse(a inventory.Assignment) inventory.AssignmentResponse {
	return inventory.AssignmentResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		ProductID:         a.ProductID,
		AssignedAt:        a.AssignedAt.Format(time.RFC3339),
		Quantity:          a.Quantity,
		Status:            string(a.Status),
		ShortfallQuantity: a.ShortfallQuantity,
	}
}
