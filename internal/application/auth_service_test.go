package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/turfhub/service-turf/internal/repository/memory"
	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/domain"
)

func newAuthService() (*AuthService, *memory.UserRepository, *auth.JWTManager) {
	users := memory.NewUserRepository()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwtManager, bcrypt.MinCost, zap.NewNop()), users, jwtManager
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, users, jwtManager := newAuthService()

	reg, err := svc.Register(ctx, RegisterRequest{FullName: "Asha Rao", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, 200, reg.StatusCode)

	stored, err := users.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash())
	assert.Equal(t, []string{auth.RoleUser}, stored.Roles())

	resp, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, resp.UserID)

	claims, err := jwtManager.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)
	assert.Equal(t, reg.UserID.String(), claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)

	profile, err := svc.GetProfile(ctx, reg.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", profile.FullName)
}

func TestRegister_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService()

	_, err := svc.Register(ctx, RegisterRequest{FullName: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{FullName: "Other", Email: "asha@example.com", Password: "secret2"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "email already in use", err.Error())

	_, err = svc.Register(ctx, RegisterRequest{FullName: "Asha", Email: "nope", Password: "secret1"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = svc.Register(ctx, RegisterRequest{FullName: "Asha", Email: "b@example.com", Password: "12345"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = svc.Register(ctx, RegisterRequest{FullName: "  ", Email: "c@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService()
	_, err := svc.Register(ctx, RegisterRequest{FullName: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuthService()

	created, err := svc.EnsureAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin@turfhub.io", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin@turfhub.io", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := users.FindByEmail(ctx, "admin@turfhub.io")
	require.NoError(t, err)
	assert.True(t, admin.HasRole(auth.RoleAdmin))
	assert.True(t, admin.HasRole(auth.RoleUser))
}
