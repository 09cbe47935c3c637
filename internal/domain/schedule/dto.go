package schedule

import (
	"fmt"

	"github.com/resto-ops/backoffice-go/internal/pkg/validator"
)

// ========================================
// SCHEDULE DTOs
// ========================================

type ShiftInput struct {
	ID            string         `json:"id,omitempty"`
	Date          string         `json:"date"`
	Label         string         `json:"label"`
	TimeSlot      TimeSlot       `json:"time_slot"`
	AssignedUsers []AssignedUser `json:"assigned_users"`
}

type UpsertScheduleRequest struct {
	WeekID string       `json:"week_id"`
	Shifts []ShiftInput `json:"shifts"`
}

func (r *UpsertScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidWeekID(r.WeekID) {
		errs = append(errs, validator.ValidationError{
			Field:   "week_id",
			Message: "week_id must be in YYYY-Www format",
		})
	}

	for i, shift := range r.Shifts {
		field := fmt.Sprintf("shifts[%d]", i)

		if _, ok := validator.IsValidDate(shift.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if validator.IsEmpty(shift.Label) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".label",
				Message: "label is required",
			})
		}
		if !validator.IsValidClock(shift.TimeSlot.Start) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".time_slot.start",
				Message: "start must be in HH:mm format",
			})
		}
		if !validator.IsValidClock(shift.TimeSlot.End) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".time_slot.end",
				Message: "end must be in HH:mm format",
			})
		}
		for j, assigned := range shift.AssignedUsers {
			if validator.IsEmpty(assigned.UserID) {
				errs = append(errs, validator.ValidationError{
					Field:   fmt.Sprintf("%s.assigned_users[%d].user_id", field, j),
					Message: "user_id is required",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetPublishedRequest struct {
	WeekID    string `json:"-"`
	Published bool   `json:"published"`
}

type ShiftResponse struct {
	ID                 string         `json:"id"`
	WeekID             string         `json:"week_id"`
	Date               string         `json:"date"`
	Label              string         `json:"label"`
	TimeSlot           TimeSlot       `json:"time_slot"`
	AssignedUsers      []AssignedUser `json:"assigned_users"`
	IsPenaltyProcessed bool           `json:"is_penalty_processed"`
}

type ScheduleResponse struct {
	WeekID    string          `json:"week_id"`
	Published bool            `json:"published"`
	Shifts    []ShiftResponse `json:"shifts"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}
