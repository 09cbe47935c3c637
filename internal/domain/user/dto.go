package user

import (
	"slices"

	"github.com/resto-ops/backoffice-go/internal/pkg/validator"
)

// ========================================
// USER DTOs
// ========================================

// CreateUserRequest provisions a staff account. Owner only; there is no
// self-registration.
type CreateUserRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	HourlyRate string `json:"hourly_rate"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !slices.Contains(RoleValues, r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of owner, manager, staff",
		})
	}

	if validator.IsEmpty(r.HourlyRate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateHourlyRateRequest struct {
	UserID     string `json:"-"`
	HourlyRate string `json:"hourly_rate"`
}

func (r *UpdateHourlyRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.HourlyRate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	HourlyRate string `json:"hourly_rate"`
	IsActive   bool   `json:"is_active"`
}
