package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DefaultStaleSessionAge caps how long a forgotten session may stay open
// before the sweeper force-closes it.
const DefaultStaleSessionAge = 16 * time.Hour

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	staleAge       time.Duration

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, userRepo user.UserRepository) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		staleAge:       DefaultStaleSessionAge,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	_, err = s.attendanceRepo.GetOpenSession(ctx, req.UserID)
	switch {
	case err == nil:
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	case errors.Is(err, attendance.ErrNotCheckedIn):
	default:
		return attendance.RecordResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}

	checkIn := s.now()
	if req.CheckInTime != nil {
		checkIn = req.CheckInTime.Time
	}

	record, err := s.attendanceRepo.Create(ctx, attendance.Record{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		CheckIn:    checkIn,
		HourlyRate: u.HourlyRate,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return toRecordResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.attendanceRepo.GetOpenSession(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to fetch open session: %w", err)
	}

	checkOut := s.now()
	if req.CheckOutTime != nil {
		checkOut = req.CheckOutTime.Time
	}

	if err := s.closeRecord(&record, checkOut); err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toRecordResponse(record), nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	record, err := s.attendanceRepo.GetOpenSession(ctx, userID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to fetch open session: %w", err)
	}

	if openBreakIndex(record.Breaks) >= 0 {
		return attendance.RecordResponse{}, attendance.ErrBreakAlreadyOpen
	}

	record.Breaks = append(record.Breaks, attendance.Break{Start: s.now()})
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toRecordResponse(record), nil
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	record, err := s.attendanceRepo.GetOpenSession(ctx, userID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to fetch open session: %w", err)
	}

	idx := openBreakIndex(record.Breaks)
	if idx < 0 {
		return attendance.RecordResponse{}, attendance.ErrNoOpenBreak
	}

	end := s.now()
	record.Breaks[idx].End = &end
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toRecordResponse(record), nil
}

// ListRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.ListRecordsFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, to := s.filterRange(filter)

	var records []attendance.Record
	var err error
	if filter.UserID != "" {
		records, err = s.attendanceRepo.ListForUser(ctx, filter.UserID, from, to)
	} else {
		records, err = s.attendanceRepo.ListForRange(ctx, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}
	return responses, nil
}

// CorrectRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CorrectRecord(ctx context.Context, req attendance.CorrectRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.RecordID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	if req.CheckInTime != nil {
		record.CheckIn = req.CheckInTime.Time
	}
	if req.CheckOutTime != nil {
		checkOut := req.CheckOutTime.Time
		record.CheckOut = &checkOut
	}
	if req.HourlyRate != nil {
		rate, err := decimal.NewFromString(*req.HourlyRate)
		if err != nil || rate.IsNegative() {
			return attendance.RecordResponse{}, attendance.ErrInvalidHourlyRate
		}
		record.HourlyRate = rate
	}

	// Re-close to recompute hours and salary from the corrected fields.
	if record.CheckOut != nil {
		if err := s.closeRecord(&record, *record.CheckOut); err != nil {
			return attendance.RecordResponse{}, err
		}
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toRecordResponse(record), nil
}

// CloseStaleSessions implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CloseStaleSessions(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.staleAge)
	stale, err := s.attendanceRepo.ListOpenSessionsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch stale sessions: %w", err)
	}

	closed := 0
	for _, record := range stale {
		// Cap the forgotten session at the stale age instead of paying out
		// the whole gap.
		if err := s.closeRecord(&record, record.CheckIn.Add(s.staleAge)); err != nil {
			continue
		}
		if err := s.attendanceRepo.Update(ctx, record); err != nil {
			return closed, fmt.Errorf("failed to close stale session %s: %w", record.ID, err)
		}
		closed++
	}
	return closed, nil
}

// closeRecord stamps the checkout and fills the computed hours and salary.
func (s *AttendanceServiceImpl) closeRecord(record *attendance.Record, checkOut time.Time) error {
	if checkOut.Before(record.CheckIn) {
		return attendance.ErrCheckOutBeforeIn
	}

	// An open break ends at checkout.
	if idx := openBreakIndex(record.Breaks); idx >= 0 {
		end := checkOut
		record.Breaks[idx].End = &end
	}

	record.CheckOut = &checkOut
	hours := record.WorkedHours(checkOut)
	salary := record.HourlyRate.Mul(decimal.NewFromFloat(hours))
	record.TotalHours = &hours
	record.Salary = &salary
	return nil
}

func (s *AttendanceServiceImpl) filterRange(filter attendance.ListRecordsFilter) (from, to time.Time) {
	now := s.now()
	// Default window: the current calendar month.
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)

	if filter.From != "" {
		if parsed, err := time.Parse(dateLayout, filter.From); err == nil {
			from = parsed
		}
	}
	if filter.To != "" {
		if parsed, err := time.Parse(dateLayout, filter.To); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}
	return from, to
}

func openBreakIndex(breaks []attendance.Break) int {
	for i, b := range breaks {
		if b.End == nil {
			return i
		}
	}
	return -1
}

func toRecordResponse(record attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:         record.ID,
		UserID:     record.UserID,
		CheckIn:    record.CheckIn.Format(time.RFC3339),
		Breaks:     record.Breaks,
		HourlyRate: record.HourlyRate.String(),
		TotalHours: record.TotalHours,
	}
	if record.UserName != nil {
		resp.UserName = *record.UserName
	}
	if record.CheckOut != nil {
		checkOut := record.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &checkOut
	}
	if record.Salary != nil {
		salary := record.Salary.String()
		resp.Salary = &salary
	}
	return resp
}
