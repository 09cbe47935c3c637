package user

import (
	"context"
)

// UserService defines business logic for staff accounts
type UserService interface {
	// ListUsers retrieves all active staff members
	ListUsers(ctx context.Context) ([]UserResponse, error)

	// CreateUser provisions a new staff account with a hashed password
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// UpdateHourlyRate changes one staff member's configured hourly rate.
	// Existing attendance records keep the rate captured at check-in.
	UpdateHourlyRate(ctx context.Context, req UpdateHourlyRateRequest) (UserResponse, error)
}
