package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/inventory"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) inventory.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Create implements inventory.AssignmentRepository.
func (r *assignmentRepository) Create(ctx context.Context, assignment inventory.Assignment) (inventory.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	if assignment.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return inventory.Assignment{}, fmt.Errorf("failed to generate assignment id: %w", err)
		}
		assignment.ID = id.String()
	}

	query := `
		INSERT INTO assignments (id, employee_id, product_id, assigned_at, quantity, status, shortfall_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.ID, assignment.EmployeeID, assignment.ProductID,
		assignment.AssignedAt, assignment.Quantity, assignment.Status, assignment.ShortfallQuantity,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		return inventory.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// GetByID implements inventory.AssignmentRepository.
func (r *assignmentRepository) GetByID(ctx context.Context, id string) (inventory.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.product_id, a.assigned_at, a.quantity,
			   a.status, a.shortfall_quantity, a.created_at, a.updated_at,
			   e.full_name
		FROM assignments a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var a inventory.Assignment
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.ProductID, &a.AssignedAt, &a.Quantity,
		&a.Status, &a.ShortfallQuantity, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inventory.Assignment{}, inventory.ErrAssignmentNotFound
		}
		return inventory.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	return a, nil
}

// List implements inventory.AssignmentRepository.
func (r *assignmentRepository) List(ctx context.Context, filter inventory.AssignmentFilter) ([]inventory.Assignment, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("a.product_id = $%d", argPos))
		args = append(args, *filter.ProductID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM assignments a WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.product_id, a.assigned_at, a.quantity,
			   a.status, a.shortfall_quantity, a.created_at, a.updated_at,
			   e.full_name
		FROM assignments a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.assigned_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []inventory.Assignment
	for rows.Next() {
		var a inventory.Assignment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ProductID, &a.AssignedAt, &a.Quantity,
			&a.Status, &a.ShortfallQuantity, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, total, rows.Err()
}

// FindOpenByCohortDay implements inventory.AssignmentRepository.
func (r *assignmentRepository) FindOpenByCohortDay(ctx context.Context, dayStart time.Time) ([]inventory.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, product_id, assigned_at, quantity,
			   status, shortfall_quantity, created_at, updated_at
		FROM assignments
		WHERE assigned_at >= $1 AND assigned_at < $2
		  AND status IN ('assigned', 'partially_sold')
		ORDER BY assigned_at
	`

	rows, err := q.Query(ctx, query, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to find open assignments: %w", err)
	}
	defer rows.Close()

	var assignments []inventory.Assignment
	for rows.Next() {
		var a inventory.Assignment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ProductID, &a.AssignedAt, &a.Quantity,
			&a.Status, &a.ShortfallQuantity, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// ListOpenCohortDays implements inventory.AssignmentRepository.
func (r *assignmentRepository) ListOpenCohortDays(ctx context.Context, before time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT date_trunc('day', assigned_at AT TIME ZONE 'UTC') AS cohort_day
		FROM assignments
		WHERE assigned_at < $1
		  AND status IN ('assigned', 'partially_sold')
		ORDER BY cohort_day
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list open cohort days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan cohort day: %w", err)
		}
		days = append(days, day.UTC())
	}

	return days, rows.Err()
}

// UpdateOutcome implements inventory.AssignmentRepository.
func (r *assignmentRepository) UpdateOutcome(ctx context.Context, id string, status inventory.AssignmentStatus, shortfallQuantity int) error {
	q := GetQuerier(ctx, r.db)

	// Status and shortfall change in one statement, and only on rows that
	// are still open. Terminal statuses never regress.
	query := `
		UPDATE assignments
		SET status = $2, shortfall_quantity = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ('assigned', 'partially_sold')
	`

	tag, err := q.Exec(ctx, query, id, status, shortfallQuantity)
	if err != nil {
		return fmt.Errorf("failed to update assignment outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current inventory.AssignmentStatus
		err := q.QueryRow(ctx, "SELECT status FROM assignments WHERE id = $1", id).Scan(&current)
		if err == pgx.ErrNoRows {
			return inventory.ErrAssignmentNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check assignment status: %w", err)
		}
		return inventory.ErrAssignmentClosed
	}

	return nil
}
