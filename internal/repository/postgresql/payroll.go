package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// GetSheet implements payroll.PayrollRepository.
func (r *payrollRepository) GetSheet(ctx context.Context, monthID string) (payroll.MonthlySalarySheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT month_id, schedule_weeks, generated_at FROM salary_sheets WHERE month_id = $1`

	var sheet payroll.MonthlySalarySheet
	var scheduleWeeks []byte
	err := q.QueryRow(ctx, query, monthID).Scan(&sheet.MonthID, &scheduleWeeks, &sheet.GeneratedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.MonthlySalarySheet{}, payroll.ErrSheetNotFound
		}
		return payroll.MonthlySalarySheet{}, fmt.Errorf("failed to get salary sheet: %w", err)
	}
	if err := json.Unmarshal(scheduleWeeks, &sheet.ScheduleWeeks); err != nil {
		return payroll.MonthlySalarySheet{}, fmt.Errorf("failed to decode schedule weeks: %w", err)
	}

	records, err := r.recordsForMonth(ctx, monthID)
	if err != nil {
		return payroll.MonthlySalarySheet{}, err
	}
	sheet.Records = records

	// Advance and bonus totals live in their own rows and are composed on
	// read, so an adjustment added after the last recalculation still shows.
	adjustments, err := r.ListAdjustments(ctx, monthID)
	if err != nil {
		return payroll.MonthlySalarySheet{}, err
	}
	for _, adj := range adjustments {
		record, ok := sheet.Records[adj.UserID]
		if !ok {
			continue
		}
		switch adj.Kind {
		case payroll.AdjustmentKindAdvance:
			record.SalaryAdvance = record.SalaryAdvance.Add(adj.Amount)
			record.Advances = append(record.Advances, adj)
		case payroll.AdjustmentKindBonus:
			record.Bonus = record.Bonus.Add(adj.Amount)
			record.Bonuses = append(record.Bonuses, adj)
		}
		sheet.Records[adj.UserID] = record
	}

	return sheet, nil
}

// SaveSheet implements payroll.PayrollRepository.
func (r *payrollRepository) SaveSheet(ctx context.Context, sheet payroll.MonthlySalarySheet) error {
	scheduleWeeks, err := json.Marshal(sheet.ScheduleWeeks)
	if err != nil {
		return fmt.Errorf("failed to encode schedule weeks: %w", err)
	}

	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO salary_sheets (month_id, schedule_weeks, generated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (month_id) DO UPDATE SET schedule_weeks = $2, generated_at = $3
		`
		if _, err := q.Exec(txCtx, query, sheet.MonthID, scheduleWeeks, sheet.GeneratedAt); err != nil {
			return fmt.Errorf("failed to upsert salary sheet: %w", err)
		}

		if _, err := q.Exec(txCtx, `DELETE FROM salary_records WHERE month_id = $1`, sheet.MonthID); err != nil {
			return fmt.Errorf("failed to clear salary records: %w", err)
		}

		for _, record := range sheet.Records {
			absentShifts, err := json.Marshal(record.AbsentShifts)
			if err != nil {
				return fmt.Errorf("failed to encode absent shifts: %w", err)
			}
			_, err = q.Exec(txCtx, `
				INSERT INTO salary_records (
					month_id, user_id, user_name, total_working_hours, total_expected_hours,
					total_salary, average_hourly_rate, total_unpaid_penalties, total_late_minutes,
					absent_shifts, payment_status, paid_at, paid_amount
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			`, sheet.MonthID, record.UserID, record.UserName,
				record.TotalWorkingHours, record.TotalExpectedHours,
				record.TotalSalary, record.AverageHourlyRate,
				record.TotalUnpaidPenalties, record.TotalLateMinutes,
				absentShifts, record.PaymentStatus, record.PaidAt, record.PaidAmount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert salary record: %w", err)
			}
		}
		return nil
	})
}

// AddAdjustment implements payroll.PayrollRepository.
func (r *payrollRepository) AddAdjustment(ctx context.Context, adj payroll.Adjustment) (payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_adjustments (month_id, user_id, kind, amount, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		adj.MonthID, adj.UserID, adj.Kind, adj.Amount, adj.Note, adj.CreatedBy,
	).Scan(&adj.ID, &adj.CreatedAt)
	if err != nil {
		return payroll.Adjustment{}, fmt.Errorf("failed to add adjustment: %w", err)
	}

	return adj, nil
}

// DeleteAdjustment implements payroll.PayrollRepository.
func (r *payrollRepository) DeleteAdjustment(ctx context.Context, monthID, adjustmentID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM salary_adjustments WHERE month_id = $1 AND id = $2`

	tag, err := q.Exec(ctx, query, monthID, adjustmentID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}

	return nil
}

// ListAdjustments implements payroll.PayrollRepository.
func (r *payrollRepository) ListAdjustments(ctx context.Context, monthID string) ([]payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month_id, user_id, kind, amount, note, created_by, created_at
		FROM salary_adjustments
		WHERE month_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, monthID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []payroll.Adjustment
	for rows.Next() {
		var adj payroll.Adjustment
		if err := rows.Scan(
			&adj.ID, &adj.MonthID, &adj.UserID, &adj.Kind,
			&adj.Amount, &adj.Note, &adj.CreatedBy, &adj.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate adjustments: %w", err)
	}

	return adjustments, nil
}

// UpdatePayment implements payroll.PayrollRepository.
func (r *payrollRepository) UpdatePayment(ctx context.Context, monthID, userID string, status payroll.PaymentStatus, paidAt *time.Time, paidAmount *decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET payment_status = $3, paid_at = $4, paid_amount = $5
		WHERE month_id = $1 AND user_id = $2
	`

	tag, err := q.Exec(ctx, query, monthID, userID, status, paidAt, paidAmount)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) recordsForMonth(ctx context.Context, monthID string) (map[string]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, user_name, total_working_hours, total_expected_hours,
			   total_salary, average_hourly_rate, total_unpaid_penalties, total_late_minutes,
			   absent_shifts, payment_status, paid_at, paid_amount
		FROM salary_records
		WHERE month_id = $1
	`

	rows, err := q.Query(ctx, query, monthID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]payroll.SalaryRecord)
	for rows.Next() {
		var record payroll.SalaryRecord
		var absentShifts []byte
		if err := rows.Scan(
			&record.UserID, &record.UserName, &record.TotalWorkingHours, &record.TotalExpectedHours,
			&record.TotalSalary, &record.AverageHourlyRate, &record.TotalUnpaidPenalties, &record.TotalLateMinutes,
			&absentShifts, &record.PaymentStatus, &record.PaidAt, &record.PaidAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		if err := json.Unmarshal(absentShifts, &record.AbsentShifts); err != nil {
			return nil, fmt.Errorf("failed to decode absent shifts: %w", err)
		}
		record.SalaryAdvance = decimal.Zero
		record.Bonus = decimal.Zero
		records[record.UserID] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary records: %w", err)
	}

	return records, nil
}
