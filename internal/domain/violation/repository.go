package violation

import (
	"context"
	"time"
)

// ViolationRepository defines data access methods for violation records.
type ViolationRepository interface {
	Create(ctx context.Context, v Violation) (Violation, error)

	GetByID(ctx context.Context, id string) (Violation, error)

	// ListForMonth retrieves violations created within the calendar month
	// starting at monthStart.
	ListForMonth(ctx context.Context, monthStart time.Time) ([]Violation, error)

	ListForUser(ctx context.Context, userID string) ([]Violation, error)

	Update(ctx context.Context, v Violation) error
}
