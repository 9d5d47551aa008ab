package sales

import (
	"context"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/employee"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/sales"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
)

type SalesServiceImpl struct {
	saleRepo     sales.SaleEventRepository
	employeeRepo employee.EmployeeRepository
}

func NewSalesService(
	saleRepo sales.SaleEventRepository,
	employeeRepo employee.EmployeeRepository,
) sales.Service {
	return &SalesServiceImpl{
		saleRepo:     saleRepo,
		employeeRepo: employeeRepo,
	}
}

// RecordSale implements sales.Service.
func (s *SalesServiceImpl) RecordSale(ctx context.Context, req sales.RecordSaleRequest) (sales.SaleEventResponse, error) {
	if err := req.Validate(); err != nil {
		return sales.SaleEventResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return sales.SaleEventResponse{}, err
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.OccurredAt)
		if err != nil {
			return sales.SaleEventResponse{}, validator.ValidationErrors{
				{Field: "occurred_at", Message: "must be a valid RFC3339 timestamp"},
			}
		}
		occurredAt = parsed.UTC()
	}

	event := sales.SaleEvent{
		EmployeeID: req.EmployeeID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		SaleValue:  req.SaleValue,
		OccurredAt: occurredAt,
	}

	created, err := s.saleRepo.Create(ctx, event)
	if err != nil {
		return sales.SaleEventResponse{}, err
	}

	return mapToSaleEventResponse(created), nil
}

// ListSales implements sales.Service.
func (s *SalesServiceImpl) ListSales(ctx context.Context, employeeID, fromDate, toDate string) (sales.ListSalesResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	from, fromOK := validator.IsValidDate(fromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	to, toOK := validator.IsValidDate(toDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if fromOK && toOK && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must not be after to"})
	}
	if len(errs) > 0 {
		return sales.ListSalesResponse{}, errs
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return sales.ListSalesResponse{}, err
	}

	events, err := s.saleRepo.ListByEmployee(ctx, employeeID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return sales.ListSalesResponse{}, err
	}

	data := make([]sales.SaleEventResponse, 0, len(events))
	for _, e := range events {
		data = append(data, mapToSaleEventResponse(e))
	}

	return sales.ListSalesResponse{Data: data}, nil
}

func mapToSaleEventResponse(e sales.SaleEvent) sales.SaleEventResponse {
	return sales.SaleEventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		ProductID:  e.ProductID,
		Quantity:   e.Quantity,
		SaleValue:  e.SaleValue,
		OccurredAt: e.OccurredAt.Format(time.RFC3339),
	}
}
