package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDomain "github.com/turfhub/service-turf/internal/domain/user"
	"github.com/turfhub/service-turf/pkg/domain"
)

// UserModel is the GORM persistence model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Roles        string    `gorm:"type:varchar(255);not null;default:'USER'"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save inserts a new user. A taken email is a Conflict.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	if err := r.db.WithContext(ctx).Create(userToModel(u)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("email already in use")
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by id.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", "")
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

// FindByEmail retrieves a user by exact email.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", "")
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

// ExistsByEmail checks whether an account uses email.
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func userToDomain(m *UserModel) *userDomain.User {
	var roles []string
	for _, r := range strings.Split(m.Roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return userDomain.Reconstruct(m.ID, m.FullName, m.Email, m.PasswordHash, roles, m.CreatedAt)
}

func userToModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		FullName:     u.FullName(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Roles:        strings.Join(u.Roles(), ","),
		CreatedAt:    u.CreatedAt(),
	}
}
