package user

import (
	"context"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)

	// List returns all active users. The payroll aggregator iterates this set.
	List(ctx context.Context) ([]User, error)

	UpdateHourlyRate(ctx context.Context, id string, rate decimal.Decimal) error
}
