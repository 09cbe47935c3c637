package penalty

import (
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PENALTY DTOs
// ========================================

type ListAbsencesRequest struct {
	From string // "2006-01-02", inclusive
	To   string // "2006-01-02", inclusive
}

func (r *ListAbsencesRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClusterUserResponse struct {
	UserID           string  `json:"user_id"`
	UserName         string  `json:"user_name"`
	AssignedRole     string  `json:"assigned_role"`
	AssignedDuration float64 `json:"assigned_duration"`

	// SuggestedPenalty is filled for absent users only:
	// floor(assigned duration x hourly rate). A pre-fill, not a mandate.
	SuggestedPenalty *string `json:"suggested_penalty,omitempty"`
}

type AbsenceClusterResponse struct {
	Date         string                `json:"date"`
	Label        string                `json:"label"`
	TimeSlot     schedule.TimeSlot     `json:"time_slot"`
	ShiftIDs     []string              `json:"shift_ids"`
	AbsentUsers  []ClusterUserResponse `json:"absent_users"`
	PresentUsers []ClusterUserResponse `json:"present_users"`
}

type ApplyPenaltyRequest struct {
	Date         string          `json:"date"`
	ShiftIDs     []string        `json:"shift_ids"`
	AbsentUserID string          `json:"absent_user_id"`
	Amount       decimal.Decimal `json:"amount"`

	// RecipientIDs selects which present users share the bonus. Empty means
	// all present users.
	RecipientIDs []string `json:"recipient_ids,omitempty"`

	// MarkProcessed flags the constituent shifts as handled so the cluster
	// stops showing up. Defaults to true; disable to handle a second absent
	// user in the same cluster.
	MarkProcessed *bool `json:"mark_processed,omitempty"`
}

func (r *ApplyPenaltyRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if len(r.ShiftIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_ids",
			Message: "shift_ids is required",
		})
	}
	if validator.IsEmpty(r.AbsentUserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "absent_user_id",
			Message: "absent_user_id is required",
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

type BonusShareResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Amount   string `json:"amount"`
}

type FailedIntentResponse struct {
	Kind   string `json:"kind"`
	UserID string `json:"user_id,omitempty"`
	Error  string `json:"error"`
}

type ApplyPenaltyResponse struct {
	// Skipped is true when an identical application was already committed and
	// the idempotency guard suppressed the retry.
	Skipped bool `json:"skipped,omitempty"`

	Penalty  string               `json:"penalty"`
	Bonuses  []BonusShareResponse `json:"bonuses"`
	Residual string               `json:"residual"`

	// Failed lists intents that could not be committed. Commits are
	// best-effort: succeeded intents are not rolled back.
	Failed []FailedIntentResponse `json:"failed,omitempty"`
}
