package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.check_in, a.check_out, a.breaks, a.hourly_rate,
	a.total_hours, a.salary, a.created_at, a.updated_at, u.name
`

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	breaks, err := json.Marshal(record.Breaks)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to encode breaks: %w", err)
	}

	query := `
		INSERT INTO attendance_records (id, user_id, check_in, check_out, breaks, hourly_rate, total_hours, salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID, record.UserID, record.CheckIn, record.CheckOut,
		breaks, record.HourlyRate, record.TotalHours, record.Salary,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return record, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, userID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrNotCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return record, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	breaks, err := json.Marshal(record.Breaks)
	if err != nil {
		return fmt.Errorf("failed to encode breaks: %w", err)
	}

	query := `
		UPDATE attendance_records
		SET check_in = $2, check_out = $3, breaks = $4, hourly_rate = $5,
			total_hours = $6, salary = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.CheckIn, record.CheckOut, breaks,
		record.HourlyRate, record.TotalHours, record.Salary,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListForRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListForRange(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	// Open sessions (check_out IS NULL) count as overlapping from check-in on.
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.check_in < $2
		  AND (a.check_out IS NULL OR a.check_out > $1)
		ORDER BY a.check_in
	`

	return r.list(ctx, q, query, from, to)
}

// ListForUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND a.check_in < $3
		  AND (a.check_out IS NULL OR a.check_out > $2)
		ORDER BY a.check_in
	`

	return r.list(ctx, q, query, userID, from, to)
}

// ListOpenSessionsBefore implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpenSessionsBefore(ctx context.Context, cutoff time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.check_out IS NULL
		  AND a.check_in < $1
		ORDER BY a.check_in
	`

	return r.list(ctx, q, query, cutoff)
}

func (r *attendanceRepository) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Record, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var record attendance.Record
	var breaks []byte
	err := row.Scan(
		&record.ID, &record.UserID, &record.CheckIn, &record.CheckOut,
		&breaks, &record.HourlyRate, &record.TotalHours, &record.Salary,
		&record.CreatedAt, &record.UpdatedAt, &record.UserName,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	if err := json.Unmarshal(breaks, &record.Breaks); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to decode breaks: %w", err)
	}
	return record, nil
}
