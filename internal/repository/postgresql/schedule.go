package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepository) Upsert(ctx context.Context, sched schedule.Schedule) (schedule.Schedule, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO schedules (week_id, published)
			VALUES ($1, FALSE)
			ON CONFLICT (week_id) DO UPDATE SET updated_at = NOW()
			RETURNING published, created_at, updated_at
		`
		if err := q.QueryRow(txCtx, query, sched.WeekID).Scan(
			&sched.Published, &sched.CreatedAt, &sched.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert schedule: %w", err)
		}

		// Replace the week's shift set wholesale.
		if _, err := q.Exec(txCtx, `DELETE FROM shifts WHERE week_id = $1`, sched.WeekID); err != nil {
			return fmt.Errorf("failed to clear shifts: %w", err)
		}

		for _, shift := range sched.Shifts {
			assignedUsers, err := json.Marshal(shift.AssignedUsers)
			if err != nil {
				return fmt.Errorf("failed to encode assigned users: %w", err)
			}
			_, err = q.Exec(txCtx, `
				INSERT INTO shifts (id, week_id, date, label, slot_start, slot_end, assigned_users, is_penalty_processed)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, shift.ID, shift.WeekID, shift.Date, shift.Label,
				shift.TimeSlot.Start, shift.TimeSlot.End, assignedUsers, shift.IsPenaltyProcessed)
			if err != nil {
				return fmt.Errorf("failed to insert shift: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return schedule.Schedule{}, err
	}

	return sched, nil
}

// GetByWeekID implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByWeekID(ctx context.Context, weekID string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT week_id, published, created_at, updated_at FROM schedules WHERE week_id = $1`

	var sched schedule.Schedule
	err := q.QueryRow(ctx, query, weekID).Scan(
		&sched.WeekID, &sched.Published, &sched.CreatedAt, &sched.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	shifts, err := r.shiftsForWeeks(ctx, []string{weekID})
	if err != nil {
		return schedule.Schedule{}, err
	}
	sched.Shifts = shifts[weekID]

	return sched, nil
}

// GetForDateRange implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetForDateRange(ctx context.Context, from, to time.Time) ([]schedule.Schedule, error) {
	return r.getForDateRange(ctx, from, to, false)
}

// GetPublishedForDateRange implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetPublishedForDateRange(ctx context.Context, from, to time.Time) ([]schedule.Schedule, error) {
	return r.getForDateRange(ctx, from, to, true)
}

func (r *scheduleRepository) getForDateRange(ctx context.Context, from, to time.Time, publishedOnly bool) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT s.week_id, s.published, s.created_at, s.updated_at
		FROM schedules s
		JOIN shifts sh ON sh.week_id = s.week_id
		WHERE sh.date >= $1 AND sh.date <= $2
	`
	if publishedOnly {
		query += ` AND s.published = TRUE`
	}
	query += ` ORDER BY s.week_id`

	rows, err := q.Query(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	var weekIDs []string
	for rows.Next() {
		var sched schedule.Schedule
		if err := rows.Scan(&sched.WeekID, &sched.Published, &sched.CreatedAt, &sched.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, sched)
		weekIDs = append(weekIDs, sched.WeekID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}

	if len(schedules) == 0 {
		return schedules, nil
	}

	shifts, err := r.shiftsForWeeks(ctx, weekIDs)
	if err != nil {
		return nil, err
	}
	for i := range schedules {
		schedules[i].Shifts = shifts[schedules[i].WeekID]
	}

	return schedules, nil
}

// SetPublished implements schedule.ScheduleRepository.
func (r *scheduleRepository) SetPublished(ctx context.Context, weekID string, published bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE schedules SET published = $2, updated_at = NOW() WHERE week_id = $1`

	tag, err := q.Exec(ctx, query, weekID, published)
	if err != nil {
		return fmt.Errorf("failed to set published: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

// MarkShiftsPenaltyProcessed implements schedule.ScheduleRepository.
func (r *scheduleRepository) MarkShiftsPenaltyProcessed(ctx context.Context, shiftIDs []string) error {
	if len(shiftIDs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `UPDATE shifts SET is_penalty_processed = TRUE WHERE id = ANY($1)`

	if _, err := q.Exec(ctx, query, shiftIDs); err != nil {
		return fmt.Errorf("failed to mark shifts processed: %w", err)
	}

	return nil
}

func (r *scheduleRepository) shiftsForWeeks(ctx context.Context, weekIDs []string) (map[string][]schedule.AssignedShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, week_id, date, label, slot_start, slot_end, assigned_users, is_penalty_processed
		FROM shifts
		WHERE week_id = ANY($1)
		ORDER BY date, slot_start, id
	`

	rows, err := q.Query(ctx, query, weekIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := make(map[string][]schedule.AssignedShift, len(weekIDs))
	for rows.Next() {
		var shift schedule.AssignedShift
		var assignedUsers []byte
		if err := rows.Scan(
			&shift.ID, &shift.WeekID, &shift.Date, &shift.Label,
			&shift.TimeSlot.Start, &shift.TimeSlot.End, &assignedUsers, &shift.IsPenaltyProcessed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		if err := json.Unmarshal(assignedUsers, &shift.AssignedUsers); err != nil {
			return nil, fmt.Errorf("failed to decode assigned users: %w", err)
		}
		shifts[shift.WeekID] = append(shifts[shift.WeekID], shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}
