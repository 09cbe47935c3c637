package auth

import (
	"context"
)

// AuthService defines authentication operations. Account management (invites,
// password reset, OAuth) is handled outside this system.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
}
