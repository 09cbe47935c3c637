package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository defines data access methods for monthly salary sheets.
type PayrollRepository interface {
	// GetSheet retrieves one month's sheet with records and adjustments.
	// Returns ErrSheetNotFound when the month has never been calculated.
	GetSheet(ctx context.Context, monthID string) (MonthlySalarySheet, error)

	// SaveSheet persists a freshly computed sheet, replacing the month's
	// records. Adjustments live in their own rows and survive the replace.
	SaveSheet(ctx context.Context, sheet MonthlySalarySheet) error

	AddAdjustment(ctx context.Context, adj Adjustment) (Adjustment, error)
	DeleteAdjustment(ctx context.Context, monthID, adjustmentID string) error
	ListAdjustments(ctx context.Context, monthID string) ([]Adjustment, error)

	// UpdatePayment toggles one record's payment status, stamping paidAt and
	// the actual paid amount when marking paid.
	UpdatePayment(ctx context.Context, monthID, userID string, status PaymentStatus, paidAt *time.Time, paidAmount *decimal.Decimal) error
}
