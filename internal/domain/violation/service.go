package violation

import (
	"context"
)

// ViolationService defines business logic for violation tracking
type ViolationService interface {
	// CreateViolation records a new violation with a fine
	CreateViolation(ctx context.Context, req CreateViolationRequest) (ViolationResponse, error)

	// ListViolations retrieves violations with filters
	ListViolations(ctx context.Context, filter ListViolationsFilter) ([]ViolationResponse, error)

	// Waive excludes a violation's fine from unpaid totals
	Waive(ctx context.Context, id string) (ViolationResponse, error)

	// SubmitPenalty records proof that a fine has been paid
	SubmitPenalty(ctx context.Context, req SubmitPenaltyRequest) (ViolationResponse, error)
}
