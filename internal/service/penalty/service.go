package penalty

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type PenaltyServiceImpl struct {
	scheduleRepo   schedule.ScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	payrollRepo    payroll.PayrollRepository
	applicationLog penalty.ApplicationLog

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewPenaltyService(
	scheduleRepo schedule.ScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	payrollRepo payroll.PayrollRepository,
	applicationLog penalty.ApplicationLog,
) *PenaltyServiceImpl {
	return &PenaltyServiceImpl{
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		payrollRepo:    payrollRepo,
		applicationLog: applicationLog,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ListAbsences implements penalty.PenaltyService.
func (s *PenaltyServiceImpl) ListAbsences(ctx context.Context, req penalty.ListAbsencesRequest) ([]penalty.AbsenceClusterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reports, err := s.detectRange(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}

	rates, err := s.hourlyRates(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]penalty.AbsenceClusterResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, toClusterResponse(report, rates))
	}
	return responses, nil
}

// ApplyPenalty implements penalty.PenaltyService.
func (s *PenaltyServiceImpl) ApplyPenalty(ctx context.Context, req penalty.ApplyPenaltyRequest) (penalty.ApplyPenaltyResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.ApplyPenaltyResponse{}, err
	}

	actorID := actorFromContext(ctx)

	// Re-derive the cluster from the current store state rather than trusting
	// the client's stale view of it.
	reports, err := s.detectRange(ctx, req.Date, req.Date)
	if err != nil {
		return penalty.ApplyPenaltyResponse{}, err
	}

	report, ok := matchCluster(reports, req.ShiftIDs)
	if !ok {
		return penalty.ApplyPenaltyResponse{}, penalty.ErrClusterNotFound
	}

	draft, err := NewAllocationDraft(report, req.AbsentUserID)
	if err != nil {
		return penalty.ApplyPenaltyResponse{}, err
	}
	draft.Amount = req.Amount
	if len(req.RecipientIDs) > 0 {
		if err := draft.SelectRecipients(req.RecipientIDs); err != nil {
			return penalty.ApplyPenaltyResponse{}, err
		}
	}
	if req.MarkProcessed != nil {
		draft.MarkProcessed = *req.MarkProcessed
	}

	intents, residual, err := draft.BuildIntents()
	if err != nil {
		return penalty.ApplyPenaltyResponse{}, err
	}

	// Claim the content-derived key before dispatching so a double submit
	// cannot create duplicate advance/bonus entries.
	claimed, err := s.applicationLog.Claim(ctx, draft.IdempotencyKey())
	if err != nil {
		return penalty.ApplyPenaltyResponse{}, fmt.Errorf("failed to claim penalty application: %w", err)
	}
	if !claimed {
		return penalty.ApplyPenaltyResponse{Skipped: true}, nil
	}

	response := penalty.ApplyPenaltyResponse{
		Penalty:  draft.Amount.String(),
		Residual: residual.String(),
		Bonuses:  []penalty.BonusShareResponse{},
	}

	// Best-effort dispatch: a failed intent is reported, not rolled back.
	for _, intent := range intents {
		if err := s.dispatch(ctx, intent, actorID); err != nil {
			response.Failed = append(response.Failed, penalty.FailedIntentResponse{
				Kind:   string(intent.Kind),
				UserID: intent.UserID,
				Error:  err.Error(),
			})
			continue
		}
		if intent.Kind == IntentBonus {
			response.Bonuses = append(response.Bonuses, penalty.BonusShareResponse{
				UserID:   intent.UserID,
				UserName: intent.UserName,
				Amount:   intent.Amount.String(),
			})
		}
	}

	return response, nil
}

func (s *PenaltyServiceImpl) dispatch(ctx context.Context, intent WriteIntent, actorID string) error {
	switch intent.Kind {
	case IntentAdvance:
		_, err := s.payrollRepo.AddAdjustment(ctx, payroll.Adjustment{
			MonthID:   intent.MonthID,
			UserID:    intent.UserID,
			Kind:      payroll.AdjustmentKindAdvance,
			Amount:    intent.Amount,
			Note:      intent.Note,
			CreatedBy: actorID,
		})
		return err
	case IntentBonus:
		_, err := s.payrollRepo.AddAdjustment(ctx, payroll.Adjustment{
			MonthID:   intent.MonthID,
			UserID:    intent.UserID,
			Kind:      payroll.AdjustmentKindBonus,
			Amount:    intent.Amount,
			Note:      intent.Note,
			CreatedBy: actorID,
		})
		return err
	case IntentMarkProcessed:
		return s.scheduleRepo.MarkShiftsPenaltyProcessed(ctx, intent.ShiftIDs)
	default:
		return fmt.Errorf("unknown write intent kind %q", intent.Kind)
	}
}

// detectRange fetches the range's shifts and attendance and runs the
// clustering and absence passes.
func (s *PenaltyServiceImpl) detectRange(ctx context.Context, from, to string) ([]penalty.AbsenceCluster, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, schedule.ErrInvalidRequestData
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, schedule.ErrInvalidRequestData
	}

	schedules, err := s.scheduleRepo.GetForDateRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	var shifts []schedule.AssignedShift
	for _, sched := range schedules {
		for _, shift := range sched.Shifts {
			if shift.Date < from || shift.Date > to {
				continue
			}
			shifts = append(shifts, shift)
		}
	}

	// Overnight shifts can end well past the range's last date; pad the
	// attendance fetch so their sessions are seen.
	records, err := s.attendanceRepo.ListForRange(ctx, fromDate, toDate.Add(48*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	clusters := ClusterShifts(shifts)
	return DetectAbsences(clusters, records, s.now()), nil
}

func (s *PenaltyServiceImpl) hourlyRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	rates := make(map[string]decimal.Decimal, len(users))
	for _, u := range users {
		rates[u.ID] = u.HourlyRate
	}
	return rates, nil
}

// matchCluster finds the report whose constituent shift id set equals the
// requested one.
func matchCluster(reports []penalty.AbsenceCluster, shiftIDs []string) (penalty.AbsenceCluster, bool) {
	want := make(map[string]bool, len(shiftIDs))
	for _, id := range shiftIDs {
		want[id] = true
	}

	for _, report := range reports {
		ids := report.MegaShift.ShiftIDs()
		if len(ids) != len(want) {
			continue
		}
		matched := true
		for _, id := range ids {
			if !want[id] {
				matched = false
				break
			}
		}
		if matched {
			return report, true
		}
	}
	return penalty.AbsenceCluster{}, false
}

func toClusterResponse(report penalty.AbsenceCluster, rates map[string]decimal.Decimal) penalty.AbsenceClusterResponse {
	resp := penalty.AbsenceClusterResponse{
		Date:         report.MegaShift.Date,
		Label:        report.MegaShift.Label,
		TimeSlot:     report.MegaShift.TimeSlot,
		ShiftIDs:     report.MegaShift.ShiftIDs(),
		AbsentUsers:  make([]penalty.ClusterUserResponse, 0, len(report.AbsentUsers)),
		PresentUsers: make([]penalty.ClusterUserResponse, 0, len(report.PresentUsers)),
	}

	for _, u := range report.AbsentUsers {
		suggested := SuggestPenalty(u.AssignedDuration, rates[u.UserID]).String()
		resp.AbsentUsers = append(resp.AbsentUsers, penalty.ClusterUserResponse{
			UserID:           u.UserID,
			UserName:         u.UserName,
			AssignedRole:     u.AssignedRole,
			AssignedDuration: u.AssignedDuration,
			SuggestedPenalty: &suggested,
		})
	}
	for _, u := range report.PresentUsers {
		resp.PresentUsers = append(resp.PresentUsers, penalty.ClusterUserResponse{
			UserID:           u.UserID,
			UserName:         u.UserName,
			AssignedRole:     u.AssignedRole,
			AssignedDuration: u.AssignedDuration,
		})
	}
	return resp
}

// actorFromContext pulls the acting user id from the JWT claims; empty when
// unauthenticated (internal callers).
func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	actorID, _ := claims["user_id"].(string)
	return actorID
}
