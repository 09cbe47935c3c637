package response

import (
	"errors"
	"net/http"

	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/auth"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/resto-ops/backoffice-go/internal/domain/violation"
	"github.com/resto-ops/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidHourlyRate):
		BadRequest(w, "Hourly rate must be a non-negative number", nil)
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrSchedulePublished):
		Conflict(w, "Published schedule cannot be modified")
	case errors.Is(err, schedule.ErrInvalidWeekID):
		BadRequest(w, "Week id must be in YYYY-Www format", nil)
	case errors.Is(err, schedule.ErrDateOutsideWeek):
		BadRequest(w, "Shift date falls outside the schedule week", nil)
	case errors.Is(err, schedule.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open attendance session already exists")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, "No open attendance session found")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No break in progress")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrCheckOutBeforeIn):
		BadRequest(w, "Check-out cannot precede check-in", nil)
	case errors.Is(err, attendance.ErrInvalidHourlyRate):
		BadRequest(w, "Hourly rate must be a non-negative number", nil)

	// Violation domain errors
	case errors.Is(err, violation.ErrViolationNotFound):
		NotFound(w, "Violation not found")
	case errors.Is(err, violation.ErrAlreadyWaived):
		Conflict(w, "Violation already waived")
	case errors.Is(err, violation.ErrAlreadySubmitted):
		Conflict(w, "Penalty already submitted")

	// Penalty domain errors
	case errors.Is(err, penalty.ErrClusterNotFound):
		NotFound(w, "Absence cluster not found")
	case errors.Is(err, penalty.ErrUserNotAbsent):
		BadRequest(w, "User is not absent in this cluster", nil)
	case errors.Is(err, penalty.ErrRecipientNotPresent):
		BadRequest(w, "Bonus recipient is not present in this cluster", nil)
	case errors.Is(err, penalty.ErrInvalidPenaltyAmount):
		BadRequest(w, "Penalty amount must be positive", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSheetNotFound):
		NotFound(w, "Salary sheet not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrAdjustmentNotFound):
		NotFound(w, "Salary adjustment not found")
	case errors.Is(err, payroll.ErrInvalidMonthID):
		BadRequest(w, "Month id must be in YYYY-MM format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
