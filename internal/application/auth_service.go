package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/turfhub/service-turf/internal/domain/user"
	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/domain"
)

// AuthService handles registration, login and profile lookups.
type AuthService struct {
	users      userDomain.UserRepository
	jwtManager *auth.JWTManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.UserRepository, jwtManager *auth.JWTManager, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtManager: jwtManager, bcryptCost: bcryptCost, logger: logger}
}

// Register creates a USER account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := s.createUser(ctx, req.FullName, req.Email, req.Password, []string{auth.RoleUser})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID().String()))
	return &RegisterResponse{
		StatusCode: http.StatusOK,
		Message:    "registration successful",
		UserID:     u.ID(),
	}, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !auth.VerifyPassword(u.PasswordHash(), req.Password) {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(u.ID(), u.Email(), u.Roles())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		StatusCode: http.StatusOK,
		Token:      token,
		ExpiresAt:  expiresAt,
		UserID:     u.ID(),
		Roles:      u.Roles(),
	}, nil
}

// GetProfile returns the profile of userID.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(u), nil
}

// EnsureAdmin creates the bootstrap administrator when email is set and no
// account uses it yet. It returns true when an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return false, nil
	}

	u, err := s.createUser(ctx, "Administrator", email, password, []string{auth.RoleUser, auth.RoleAdmin})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("admin account created", zap.String("user_id", u.ID().String()))
	return true, nil
}

func (s *AuthService) createUser(ctx context.Context, fullName, email, password string, roles []string) (*userDomain.User, error) {
	email = strings.TrimSpace(email)
	if err := userDomain.ValidateEmail(email); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := userDomain.ValidatePassword(password); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, domain.NewValidationError("full name is required")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.NewConflictError("email already in use")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userDomain.NewUser(fullName, email, hash, roles)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return u, nil
}
