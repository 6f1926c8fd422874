package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 6

var validate = validator.New()

// User is a registered account. The password is held only as a bcrypt hash.
type User struct {
	id           uuid.UUID
	fullName     string
	email        string
	passwordHash string
	roles        []string
	createdAt    time.Time
}

// NewUser validates the profile fields and creates a user with the given
// hash and roles. At least one role is required.
func NewUser(fullName, email, passwordHash string, roles []string) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)

	if fullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("at least one role is required")
	}

	return &User{
		id:           uuid.New(),
		fullName:     fullName,
		email:        email,
		passwordHash: passwordHash,
		roles:        append([]string(nil), roles...),
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a User from persistence.
func Reconstruct(id uuid.UUID, fullName, email, passwordHash string, roles []string, createdAt time.Time) *User {
	return &User{
		id: id, fullName: fullName, email: email, passwordHash: passwordHash,
		roles: roles, createdAt: createdAt,
	}
}

// ValidateEmail checks that s has an email address shape.
func ValidateEmail(s string) error {
	if err := validate.Var(s, "required,email"); err != nil {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}

// ValidatePassword checks the plaintext password policy.
func ValidatePassword(plain string) error {
	if len(plain) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Getters.
func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) FullName() string      { return u.fullName }
func (u *User) Email() string         { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Roles() []string       { return append([]string(nil), u.roles...) }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
