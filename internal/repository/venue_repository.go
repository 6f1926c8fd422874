package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
	"github.com/turfhub/service-turf/pkg/domain"
)

// VenueModel is the GORM persistence model for the venues table.
type VenueModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Area      string    `gorm:"type:varchar(255);not null"`
	SportType string    `gorm:"type:varchar(100);not null;index"`
	Price     *int64
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (VenueModel) TableName() string {
	return "venues"
}

// GormVenueRepository is the GORM-based implementation of VenueRepository.
type GormVenueRepository struct {
	db *gorm.DB
}

// NewGormVenueRepository creates a new GORM-based venue repository.
func NewGormVenueRepository(db *gorm.DB) *GormVenueRepository {
	return &GormVenueRepository{db: db}
}

// Save inserts a new venue. A case-insensitive name clash is a Conflict.
func (r *GormVenueRepository) Save(ctx context.Context, v *venueDomain.Venue) error {
	if err := r.db.WithContext(ctx).Create(venueToModel(v)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("venue name already exists")
		}
		return err
	}
	return nil
}

// Update persists the mutable fields of an existing venue.
func (r *GormVenueRepository) Update(ctx context.Context, v *venueDomain.Venue) error {
	result := r.db.WithContext(ctx).
		Model(&VenueModel{}).
		Where("id = ?", v.ID()).
		Update("active", v.Active())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("venue", v.ID().String())
	}
	return nil
}

// FindByID returns a venue whether or not it is active.
func (r *GormVenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*venueDomain.Venue, error) {
	var model VenueModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("venue", "")
		}
		return nil, err
	}
	return venueToDomain(&model), nil
}

// ExistsByName checks for a venue with the same name ignoring case.
func (r *GormVenueRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&VenueModel{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

// FindActive lists active venues ordered by name.
func (r *GormVenueRepository) FindActive(ctx context.Context) ([]*venueDomain.Venue, error) {
	var models []VenueModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return venuesToDomain(models), nil
}

// FindActiveBySportType lists active venues whose sport type matches ignoring case and padding.
func (r *GormVenueRepository) FindActiveBySportType(ctx context.Context, sportType string) ([]*venueDomain.Venue, error) {
	var models []VenueModel
	err := r.db.WithContext(ctx).
		Where("active = ? AND LOWER(TRIM(sport_type)) = LOWER(TRIM(?))", true, sportType).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return venuesToDomain(models), nil
}

// Count returns the total number of venues.
func (r *GormVenueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&VenueModel{}).Count(&count).Error
	return count, err
}

func venueToDomain(m *VenueModel) *venueDomain.Venue {
	return venueDomain.Reconstruct(m.ID, m.Name, m.Area, m.SportType, m.Price, m.Active, m.CreatedAt)
}

func venuesToDomain(models []VenueModel) []*venueDomain.Venue {
	venues := make([]*venueDomain.Venue, len(models))
	for i := range models {
		venues[i] = venueToDomain(&models[i])
	}
	return venues
}

func venueToModel(v *venueDomain.Venue) *VenueModel {
	return &VenueModel{
		ID:        v.ID(),
		Name:      v.Name(),
		Area:      v.Area(),
		SportType: v.SportType(),
		Price:     v.Price(),
		Active:    v.Active(),
		CreatedAt: v.CreatedAt(),
	}
}
