package violation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/resto-ops/backoffice-go/internal/domain/violation"
)

const monthLayout = "2006-01"

type ViolationServiceImpl struct {
	violationRepo violation.ViolationRepository

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewViolationService(violationRepo violation.ViolationRepository) *ViolationServiceImpl {
	return &ViolationServiceImpl{
		violationRepo: violationRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateViolation implements violation.ViolationService.
func (s *ViolationServiceImpl) CreateViolation(ctx context.Context, req violation.CreateViolationRequest) (violation.ViolationResponse, error) {
	if err := req.Validate(); err != nil {
		return violation.ViolationResponse{}, err
	}

	created, err := s.violationRepo.Create(ctx, violation.Violation{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		CreatedBy:   actorFromContext(ctx),
	})
	if err != nil {
		return violation.ViolationResponse{}, fmt.Errorf("failed to create violation: %w", err)
	}

	return toViolationResponse(created), nil
}

// ListViolations implements violation.ViolationService.
func (s *ViolationServiceImpl) ListViolations(ctx context.Context, filter violation.ListViolationsFilter) ([]violation.ViolationResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var violations []violation.Violation
	var err error
	switch {
	case filter.UserID != "":
		violations, err = s.violationRepo.ListForUser(ctx, filter.UserID)
	default:
		month := filter.Month
		if month == "" {
			month = s.now().Format(monthLayout)
		}
		monthStart, parseErr := time.Parse(monthLayout, month)
		if parseErr != nil {
			return nil, parseErr
		}
		violations, err = s.violationRepo.ListForMonth(ctx, monthStart)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch violations: %w", err)
	}

	responses := make([]violation.ViolationResponse, 0, len(violations))
	for _, v := range violations {
		responses = append(responses, toViolationResponse(v))
	}
	return responses, nil
}

// Waive implements violation.ViolationService.
func (s *ViolationServiceImpl) Waive(ctx context.Context, id string) (violation.ViolationResponse, error) {
	v, err := s.violationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, violation.ErrViolationNotFound) {
			return violation.ViolationResponse{}, err
		}
		return violation.ViolationResponse{}, fmt.Errorf("failed to fetch violation: %w", err)
	}

	if v.Waived {
		return violation.ViolationResponse{}, violation.ErrAlreadyWaived
	}

	v.Waived = true
	if err := s.violationRepo.Update(ctx, v); err != nil {
		return violation.ViolationResponse{}, fmt.Errorf("failed to update violation: %w", err)
	}

	return toViolationResponse(v), nil
}

// SubmitPenalty implements violation.ViolationService.
func (s *ViolationServiceImpl) SubmitPenalty(ctx context.Context, req violation.SubmitPenaltyRequest) (violation.ViolationResponse, error) {
	v, err := s.violationRepo.GetByID(ctx, req.ViolationID)
	if err != nil {
		if errors.Is(err, violation.ErrViolationNotFound) {
			return violation.ViolationResponse{}, err
		}
		return violation.ViolationResponse{}, fmt.Errorf("failed to fetch violation: %w", err)
	}

	if v.PenaltySubmitted {
		return violation.ViolationResponse{}, violation.ErrAlreadySubmitted
	}

	v.PenaltySubmitted = true
	v.PenaltyPhotoURLs = append(v.PenaltyPhotoURLs, req.PhotoURLs...)
	if err := s.violationRepo.Update(ctx, v); err != nil {
		return violation.ViolationResponse{}, fmt.Errorf("failed to update violation: %w", err)
	}

	return toViolationResponse(v), nil
}

func toViolationResponse(v violation.Violation) violation.ViolationResponse {
	resp := violation.ViolationResponse{
		ID:               v.ID,
		UserID:           v.UserID,
		Name:             v.Name,
		Description:      v.Description,
		Cost:             v.Cost.String(),
		Waived:           v.Waived,
		PenaltySubmitted: v.PenaltySubmitted,
		PenaltyPhotoURLs: v.PenaltyPhotoURLs,
		CreatedAt:        v.CreatedAt.Format(time.RFC3339),
	}
	if v.UserName != nil {
		resp.UserName = *v.UserName
	}
	return resp
}

// actorFromContext pulls the acting user id from the JWT claims; empty when
// unauthenticated (internal callers).
func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	actorID, _ := claims["user_id"].(string)
	return actorID
}
