package attendance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/resto-ops/backoffice-go/internal/pkg/validator"
)

// FlexibleTime accepts timestamps as RFC3339 strings or epoch seconds. Clients
// of the old document store sent both shapes interchangeably.
type FlexibleTime struct {
	time.Time
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, err := time.Parse(time.RFC3339, asString)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", asString, err)
		}
		t.Time = parsed
		return nil
	}

	epoch, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", string(data))
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	t.Time = time.Unix(sec, nsec).UTC()
	return nil
}

func (t FlexibleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	UserID      string        `json:"user_id"`
	CheckInTime *FlexibleTime `json:"check_in_time,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	UserID       string        `json:"user_id"`
	CheckOutTime *FlexibleTime `json:"check_out_time,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CorrectRecordRequest fixes a closed record's times or rate. Manager only.
type CorrectRecordRequest struct {
	RecordID     string        `json:"-"`
	CheckInTime  *FlexibleTime `json:"check_in_time,omitempty"`
	CheckOutTime *FlexibleTime `json:"check_out_time,omitempty"`
	HourlyRate   *string       `json:"hourly_rate,omitempty"`
}

func (r *CorrectRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "record_id",
			Message: "record_id is required",
		})
	}

	if r.CheckInTime == nil && r.CheckOutTime == nil && r.HourlyRate == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordsFilter struct {
	UserID string
	From   string // "2006-01-02", inclusive
	To     string // "2006-01-02", inclusive
}

func (f *ListRecordsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != "" {
		if _, ok := validator.IsValidDate(f.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if f.To != "" {
		if _, ok := validator.IsValidDate(f.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	UserName   string   `json:"user_name,omitempty"`
	CheckIn    string   `json:"check_in"`
	CheckOut   *string  `json:"check_out,omitempty"`
	Breaks     []Break  `json:"breaks,omitempty"`
	HourlyRate string   `json:"hourly_rate"`
	TotalHours *float64 `json:"total_hours,omitempty"`
	Salary     *string  `json:"salary,omitempty"`
}
