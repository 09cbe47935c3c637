package payroll

import "errors"

var (
	ErrSheetNotFound      = errors.New("salary sheet not found")
	ErrInvalidMonthID     = errors.New("month id must be in YYYY-MM format")
	ErrRecordNotFound     = errors.New("salary record not found")
	ErrAdjustmentNotFound = errors.New("salary adjustment not found")
)
