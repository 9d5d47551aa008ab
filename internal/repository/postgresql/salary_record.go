package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/payroll"
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type salaryRecordRepository struct {
	db *database.DB
}

func NewSalaryRecordRepository(db *database.DB) payroll.SalaryRecordRepository {
	return &salaryRecordRepository{db: db}
}

// breakdownJSON is the jsonb shape of a stored breakdown.
type breakdownJSON struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	SalesTotal         decimal.Decimal `json:"sales_total"`
	BonusPercent       decimal.Decimal `json:"bonus_percent"`
	TotalWorkedHours   decimal.Decimal `json:"total_worked_hours"`
	OvertimeRate       decimal.Decimal `json:"overtime_rate"`
	UndertimeDeduction decimal.Decimal `json:"undertime_deduction"`
	AbsenceDeduction   decimal.Decimal `json:"absence_deduction"`
	AbsentDays         int             `json:"absent_days"`
}

func marshalBreakdown(b *payroll.Breakdown) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(breakdownJSON(*b))
}

func unmarshalBreakdown(data []byte) (*payroll.Breakdown, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var bj breakdownJSON
	if err := json.Unmarshal(data, &bj); err != nil {
		return nil, err
	}
	b := payroll.Breakdown(bj)
	return &b, nil
}

// Upsert implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepository) Upsert(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return payroll.SalaryRecord{}, fmt.Errorf("failed to generate salary record id: %w", err)
		}
		record.ID = id.String()
	}

	breakdownData, err := marshalBreakdown(record.Breakdown)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	query := `
		INSERT INTO salary_records (id, employee_id, period_start, period_end, amount, breakdown, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (employee_id, period_start, period_end)
		DO UPDATE SET amount = EXCLUDED.amount, breakdown = EXCLUDED.breakdown, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodStart, record.PeriodEnd, record.Amount, breakdownData,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to upsert salary record: %w", err)
	}

	return record, nil
}

// GetByEmployeePeriod implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, period_start, period_end, amount, breakdown, created_at, updated_at
		FROM salary_records
		WHERE employee_id = $1 AND period_start = $2 AND period_end = $3
	`

	var record payroll.SalaryRecord
	var breakdownData []byte
	err := q.QueryRow(ctx, query, employeeID, periodStart, periodEnd).Scan(
		&record.ID, &record.EmployeeID, &record.PeriodStart, &record.PeriodEnd,
		&record.Amount, &breakdownData, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	record.Breakdown, err = unmarshalBreakdown(breakdownData)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to unmarshal breakdown: %w", err)
	}

	return record, nil
}

// ListMissingBreakdown implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepository) ListMissingBreakdown(ctx context.Context) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, period_start, period_end, amount, created_at, updated_at
		FROM salary_records
		WHERE breakdown IS NULL
		ORDER BY period_start, employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records without breakdown: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalaryRecord
	for rows.Next() {
		var record payroll.SalaryRecord
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.PeriodStart, &record.PeriodEnd,
			&record.Amount, &record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// SetBreakdown implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepository) SetBreakdown(ctx context.Context, id string, breakdown payroll.Breakdown) error {
	q := GetQuerier(ctx, r.db)

	breakdownData, err := marshalBreakdown(&breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	// Only fills records that have no breakdown; repairing twice is a no-op.
	query := `
		UPDATE salary_records
		SET breakdown = $2, updated_at = NOW()
		WHERE id = $1 AND breakdown IS NULL
	`

	tag, err := q.Exec(ctx, query, id, breakdownData)
	if err != nil {
		return fmt.Errorf("failed to set breakdown: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM salary_records WHERE id = $1)", id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check salary record: %w", err)
		}
		if !exists {
			return payroll.ErrSalaryRecordNotFound
		}
		// Already repaired; nothing to do.
	}

	return nil
}
