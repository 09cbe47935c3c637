package violation

import (
	"github.com/resto-ops/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// VIOLATION DTOs
// ========================================

type CreateViolationRequest struct {
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
}

func (r *CreateViolationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.Cost.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "cost",
			Message: "cost must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitPenaltyRequest struct {
	ViolationID string   `json:"-"`
	PhotoURLs   []string `json:"photo_urls,omitempty"`
}

type ListViolationsFilter struct {
	UserID string
	Month  string // "2006-01", filters by CreatedAt
}

func (f *ListViolationsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != "" {
		if _, ok := validator.IsValidMonth(f.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ViolationResponse struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	UserName         string   `json:"user_name,omitempty"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Cost             string   `json:"cost"`
	Waived           bool     `json:"waived"`
	PenaltySubmitted bool     `json:"penalty_submitted"`
	PenaltyPhotoURLs []string `json:"penalty_photo_urls,omitempty"`
	CreatedAt        string   `json:"created_at"`
}
