package payroll

import (
	"context"
)

// PayrollService defines business logic for monthly payroll
type PayrollService interface {
	// CalculateSheet recomputes one month's salary sheet from attendance,
	// violations and published schedules, preserving mutable fields of any
	// existing sheet, and persists the result.
	CalculateSheet(ctx context.Context, monthID string) (SheetResponse, error)

	// GetSheet retrieves the persisted sheet for one month
	GetSheet(ctx context.Context, monthID string) (SheetResponse, error)

	// AddAdjustment records an advance or bonus against one employee's month
	AddAdjustment(ctx context.Context, req AddAdjustmentRequest) (AdjustmentResponse, error)

	// DeleteAdjustment removes an advance or bonus entry
	DeleteAdjustment(ctx context.Context, monthID, adjustmentID string) error

	// UpdatePayment toggles an employee's payment status for the month
	UpdatePayment(ctx context.Context, req UpdatePaymentRequest) error
}
