package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil || rate.IsNegative() {
		return user.UserResponse{}, user.ErrInvalidHourlyRate
	}

	_, err = s.userRepo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return user.UserResponse{}, user.ErrUserEmailExists
	case errors.Is(err, user.ErrUserNotFound):
	default:
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		HourlyRate:   rate,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(created), nil
}

// UpdateHourlyRate implements user.UserService.
func (s *UserServiceImpl) UpdateHourlyRate(ctx context.Context, req user.UpdateHourlyRateRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil || rate.IsNegative() {
		return user.UserResponse{}, user.ErrInvalidHourlyRate
	}

	if err := s.userRepo.UpdateHourlyRate(ctx, req.UserID, rate); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update hourly rate: %w", err)
	}

	updated, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return toUserResponse(updated), nil
}

func toUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		HourlyRate: u.HourlyRate.String(),
		IsActive:   u.IsActive,
	}
}
