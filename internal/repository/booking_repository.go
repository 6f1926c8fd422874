package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/turfhub/service-turf/internal/domain/booking"
	"github.com/turfhub/service-turf/pkg/domain"
)

// BookingModel is the GORM persistence model for the bookings table.
// (venue_id, booking_date, booking_time) is unique; it is the admission rule.
type BookingModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	VenueID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_bookings_venue_date_slot,priority:1;index:idx_bookings_venue_date,priority:1"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	BookingDate      time.Time  `gorm:"type:date;not null;uniqueIndex:uk_bookings_venue_date_slot,priority:2;index:idx_bookings_venue_date,priority:2"`
	BookingTime      string     `gorm:"type:varchar(20);not null;uniqueIndex:uk_bookings_venue_date_slot,priority:3"`
	Status           string     `gorm:"type:varchar(20);not null;default:'BOOKED'"`
	ConfirmationCode string     `gorm:"type:varchar(36);not null;uniqueIndex"`
	CreatedAt        time.Time  `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM-based booking repository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save inserts a booking. Losing a race on the unique slot key yields a Conflict.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(bookingToModel(b)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("slot already booked")
		}
		return err
	}
	return nil
}

// ExistsByVenueDateSlot checks for a booking at the exact triple.
func (r *GormBookingRepository) ExistsByVenueDateSlot(ctx context.Context, venueID uuid.UUID, date time.Time, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("venue_id = ? AND booking_date = ? AND booking_time = ?", venueID, bookingDomain.TruncateDate(date), slot).
		Count(&count).Error
	return count > 0, err
}

// FindBookedVenueIDs resolves, in one query, which of venueIDs are taken at (date, slot).
func (r *GormBookingRepository) FindBookedVenueIDs(ctx context.Context, venueIDs []uuid.UUID, date time.Time, slot string) (map[uuid.UUID]bool, error) {
	booked := make(map[uuid.UUID]bool)
	if len(venueIDs) == 0 {
		return booked, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("venue_id IN ? AND booking_date = ? AND booking_time = ?", venueIDs, bookingDomain.TruncateDate(date), slot).
		Distinct().
		Pluck("venue_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		booked[id] = true
	}
	return booked, nil
}

// FindByConfirmationCode retrieves a booking by its confirmation code.
func (r *GormBookingRepository) FindByConfirmationCode(ctx context.Context, code string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("confirmation_code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", "")
		}
		return nil, err
	}
	return bookingToDomain(&model), nil
}

// FindByUserID lists a user's bookings, newest first.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return bookingsToDomain(models), nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return bookingsToDomain(models), total, nil
}

func bookingToDomain(m *BookingModel) *bookingDomain.Booking {
	var userID uuid.UUID
	if m.UserID != nil {
		userID = *m.UserID
	}
	return bookingDomain.Reconstruct(m.ID, m.VenueID, userID, m.BookingDate, m.BookingTime,
		bookingDomain.Status(m.Status), m.ConfirmationCode, m.CreatedAt)
}

func bookingsToDomain(models []BookingModel) []*bookingDomain.Booking {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = bookingToDomain(&models[i])
	}
	return bookings
}

func bookingToModel(b *bookingDomain.Booking) *BookingModel {
	userID := b.UserID()
	return &BookingModel{
		ID:               b.ID(),
		VenueID:          b.VenueID(),
		UserID:           &userID,
		BookingDate:      b.Date(),
		BookingTime:      b.Slot(),
		Status:           string(b.Status()),
		ConfirmationCode: b.ConfirmationCode(),
		CreatedAt:        b.CreatedAt(),
	}
}
