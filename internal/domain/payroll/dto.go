package payroll

import (
	"github.com/resto-ops/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL DTOs
// ========================================

type AddAdjustmentRequest struct {
	MonthID string          `json:"-"`
	Kind    AdjustmentKind  `json:"-"`
	UserID  string          `json:"user_id"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note,omitempty"`
}

func (r *AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.MonthID); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month_id",
			Message: "month_id must be in YYYY-MM format",
		})
	}
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePaymentRequest struct {
	MonthID    string           `json:"-"`
	UserID     string           `json:"-"`
	Status     PaymentStatus    `json:"status"`
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
}

func (r *UpdatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.MonthID); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month_id",
			Message: "month_id must be in YYYY-MM format",
		})
	}
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.Status != PaymentStatusPaid && r.Status != PaymentStatusUnpaid {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be 'paid' or 'unpaid'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustmentResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at"`
}

type SalaryRecordResponse struct {
	UserID               string               `json:"user_id"`
	UserName             string               `json:"user_name"`
	TotalWorkingHours    float64              `json:"total_working_hours"`
	TotalExpectedHours   float64              `json:"total_expected_hours"`
	TotalSalary          string               `json:"total_salary"`
	AverageHourlyRate    string               `json:"average_hourly_rate"`
	TotalUnpaidPenalties string               `json:"total_unpaid_penalties"`
	TotalLateMinutes     int                  `json:"total_late_minutes"`
	AbsentShifts         []AbsentShift        `json:"absent_shifts,omitempty"`
	SalaryAdvance        string               `json:"salary_advance"`
	Advances             []AdjustmentResponse `json:"advances,omitempty"`
	Bonus                string               `json:"bonus"`
	Bonuses              []AdjustmentResponse `json:"bonuses,omitempty"`
	PaymentStatus        string               `json:"payment_status"`
	PaidAt               *string              `json:"paid_at,omitempty"`
	PaidAmount           *string              `json:"paid_amount,omitempty"`
	TakeHome             string               `json:"take_home"`
}

type SheetResponse struct {
	MonthID       string                 `json:"month_id"`
	Records       []SalaryRecordResponse `json:"records"`
	ScheduleWeeks []string               `json:"schedule_weeks,omitempty"`
	GeneratedAt   string                 `json:"generated_at"`
}
