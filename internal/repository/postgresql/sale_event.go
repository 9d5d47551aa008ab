package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/sales"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type saleEventRepository struct {
	db *database.DB
}

func NewSaleEventRepository(db *database.DB) sales.SaleEventRepository {
	return &saleEventRepository{db: db}
}

// Create implements sales.SaleEventRepository.
func (r *saleEventRepository) Create(ctx context.Context, event sales.SaleEvent) (sales.SaleEvent, error) {
	q := GetQuerier(ctx, r.db)

	if event.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return sales.SaleEvent{}, fmt.Errorf("failed to generate sale event id: %w", err)
		}
		event.ID = id.String()
	}

	query := `
		INSERT INTO sale_events (id, employee_id, product_id, quantity, sale_value, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID, event.EmployeeID, event.ProductID, event.Quantity, event.SaleValue, event.OccurredAt,
	).Scan(&event.CreatedAt)
	if err != nil {
		return sales.SaleEvent{}, fmt.Errorf("failed to create sale event: %w", err)
	}

	return event, nil
}

// SumQuantity implements sales.SaleEventRepository.
func (r *saleEventRepository) SumQuantity(ctx context.Context, employeeID, productID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sale_events
		WHERE employee_id = $1 AND product_id = $2
		  AND occurred_at >= $3 AND occurred_at < $4
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, productID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sale quantities: %w", err)
	}

	return total, nil
}

// SumValueByEmployee implements sales.SaleEventRepository.
func (r *saleEventRepository) SumValueByEmployee(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(sale_value), 0)
		FROM sale_events
		WHERE employee_id = $1
		  AND occurred_at >= $2 AND occurred_at < $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum sale values: %w", err)
	}

	return total, nil
}

// ListByEmployee implements sales.SaleEventRepository.
func (r *saleEventRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]sales.SaleEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, product_id, quantity, sale_value, occurred_at, created_at
		FROM sale_events
		WHERE employee_id = $1
		  AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sale events: %w", err)
	}
	defer rows.Close()

	var events []sales.SaleEvent
	for rows.Next() {
		var e sales.SaleEvent
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.ProductID, &e.Quantity, &e.SaleValue, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
