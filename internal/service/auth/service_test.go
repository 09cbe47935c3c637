package auth

import (
	"context"
	"testing"

	"github.com/resto-ops/backoffice-go/internal/domain/auth"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/resto-ops/backoffice-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) List(context.Context) ([]user.User, error) { return f.users, nil }

func (f *fakeUserRepo) UpdateHourlyRate(context.Context, string, decimal.Decimal) error { return nil }

func newTestService(t *testing.T) (*AuthServiceImpl, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: []user.User{
		{
			ID:           "u1",
			Email:        "ana@example.com",
			Name:         "Ana",
			PasswordHash: string(hash),
			Role:         user.RoleManager,
			IsActive:     true,
		},
		{
			ID:           "u2",
			Email:        "gone@example.com",
			Name:         "Gone",
			PasswordHash: string(hash),
			Role:         user.RoleStaff,
			IsActive:     false,
		},
	}}
	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	return NewAuthService(repo, jwtService), repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Positive(t, resp.ExpiresAt)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "manager", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "gone@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	// An access token is not valid as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
