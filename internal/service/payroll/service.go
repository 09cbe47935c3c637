package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/resto-ops/backoffice-go/internal/domain/violation"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	violationRepo  violation.ViolationRepository
	scheduleRepo   schedule.ScheduleRepository

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	violationRepo violation.ViolationRepository,
	scheduleRepo schedule.ScheduleRepository,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		violationRepo:  violationRepo,
		scheduleRepo:   scheduleRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// CalculateSheet implements payroll.PayrollService.
func (s *PayrollServiceImpl) CalculateSheet(ctx context.Context, monthID string) (payroll.SheetResponse, error) {
	monthStart, err := time.Parse(monthLayout, monthID)
	if err != nil {
		return payroll.SheetResponse{}, payroll.ErrInvalidMonthID
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	records, err := s.attendanceRepo.ListForRange(ctx, monthStart, monthEnd)
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	violations, err := s.violationRepo.ListForMonth(ctx, monthStart)
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to fetch violations: %w", err)
	}

	schedules, err := s.scheduleRepo.GetPublishedForDateRange(ctx, monthStart, monthEnd.AddDate(0, 0, -1))
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	adjustments, err := s.payrollRepo.ListAdjustments(ctx, monthID)
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to fetch adjustments: %w", err)
	}

	var previous *payroll.MonthlySalarySheet
	existing, err := s.payrollRepo.GetSheet(ctx, monthID)
	switch {
	case err == nil:
		previous = &existing
	case errors.Is(err, payroll.ErrSheetNotFound):
	default:
		return payroll.SheetResponse{}, fmt.Errorf("failed to fetch previous sheet: %w", err)
	}

	sheet := Calculate(CalculationInput{
		MonthID:     monthID,
		AsOf:        s.now(),
		Users:       users,
		Records:     records,
		Violations:  violations,
		Schedules:   schedules,
		Adjustments: adjustments,
		Previous:    previous,
	})

	if err := s.payrollRepo.SaveSheet(ctx, sheet); err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to save sheet: %w", err)
	}

	return toSheetResponse(sheet), nil
}

// GetSheet implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSheet(ctx context.Context, monthID string) (payroll.SheetResponse, error) {
	if _, err := time.Parse(monthLayout, monthID); err != nil {
		return payroll.SheetResponse{}, payroll.ErrInvalidMonthID
	}

	sheet, err := s.payrollRepo.GetSheet(ctx, monthID)
	if err != nil {
		if errors.Is(err, payroll.ErrSheetNotFound) {
			return payroll.SheetResponse{}, err
		}
		return payroll.SheetResponse{}, fmt.Errorf("failed to fetch sheet: %w", err)
	}

	return toSheetResponse(sheet), nil
}

// AddAdjustment implements payroll.PayrollService.
func (s *PayrollServiceImpl) AddAdjustment(ctx context.Context, req payroll.AddAdjustmentRequest) (payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	adj, err := s.payrollRepo.AddAdjustment(ctx, payroll.Adjustment{
		MonthID:   req.MonthID,
		UserID:    req.UserID,
		Kind:      req.Kind,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedBy: actorFromContext(ctx),
	})
	if err != nil {
		return payroll.AdjustmentResponse{}, fmt.Errorf("failed to add adjustment: %w", err)
	}

	return toAdjustmentResponse(adj), nil
}

// DeleteAdjustment implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteAdjustment(ctx context.Context, monthID, adjustmentID string) error {
	if _, err := time.Parse(monthLayout, monthID); err != nil {
		return payroll.ErrInvalidMonthID
	}
	return s.payrollRepo.DeleteAdjustment(ctx, monthID, adjustmentID)
}

// UpdatePayment implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayment(ctx context.Context, req payroll.UpdatePaymentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var paidAt *time.Time
	var paidAmount *decimal.Decimal
	if req.Status == payroll.PaymentStatusPaid {
		now := s.now()
		paidAt = &now
		paidAmount = req.PaidAmount
	}

	if err := s.payrollRepo.UpdatePayment(ctx, req.MonthID, req.UserID, req.Status, paidAt, paidAmount); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func toSheetResponse(sheet payroll.MonthlySalarySheet) payroll.SheetResponse {
	resp := payroll.SheetResponse{
		MonthID:       sheet.MonthID,
		Records:       make([]payroll.SalaryRecordResponse, 0, len(sheet.Records)),
		ScheduleWeeks: sheet.ScheduleWeeks,
		GeneratedAt:   sheet.GeneratedAt.Format(time.RFC3339),
	}

	for _, record := range sheet.Records {
		resp.Records = append(resp.Records, toRecordResponse(record))
	}
	sortRecordResponses(resp.Records)
	return resp
}

func toRecordResponse(record payroll.SalaryRecord) payroll.SalaryRecordResponse {
	resp := payroll.SalaryRecordResponse{
		UserID:               record.UserID,
		UserName:             record.UserName,
		TotalWorkingHours:    record.TotalWorkingHours,
		TotalExpectedHours:   record.TotalExpectedHours,
		TotalSalary:          record.TotalSalary.String(),
		AverageHourlyRate:    record.AverageHourlyRate.String(),
		TotalUnpaidPenalties: record.TotalUnpaidPenalties.String(),
		TotalLateMinutes:     record.TotalLateMinutes,
		AbsentShifts:         record.AbsentShifts,
		SalaryAdvance:        record.SalaryAdvance.String(),
		Bonus:                record.Bonus.String(),
		PaymentStatus:        string(record.PaymentStatus),
		TakeHome:             record.TakeHome().String(),
	}

	for _, adj := range record.Advances {
		resp.Advances = append(resp.Advances, toAdjustmentResponse(adj))
	}
	for _, adj := range record.Bonuses {
		resp.Bonuses = append(resp.Bonuses, toAdjustmentResponse(adj))
	}

	if record.PaidAt != nil {
		paidAt := record.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	if record.PaidAmount != nil {
		paidAmount := record.PaidAmount.String()
		resp.PaidAmount = &paidAmount
	}
	return resp
}

func toAdjustmentResponse(adj payroll.Adjustment) payroll.AdjustmentResponse {
	return payroll.AdjustmentResponse{
		ID:        adj.ID,
		UserID:    adj.UserID,
		Kind:      string(adj.Kind),
		Amount:    adj.Amount.String(),
		Note:      adj.Note,
		CreatedBy: adj.CreatedBy,
		CreatedAt: adj.CreatedAt.Format(time.RFC3339),
	}
}

func sortRecordResponses(records []payroll.SalaryRecordResponse) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].UserName < records[j].UserName
	})
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
