package application

import (
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/turfhub/service-turf/internal/domain/booking"
	userDomain "github.com/turfhub/service-turf/internal/domain/user"
	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
)

// VenueDTO is the public view of a venue.
type VenueDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Area      string    `json:"area"`
	SportType string    `json:"sportType"`
	Price     *int64    `json:"price"`
}

// AdminVenueDTO adds the active flag for catalog management.
type AdminVenueDTO struct {
	VenueDTO
	Active bool `json:"active"`
}

// CreateVenueRequest holds data to add a venue.
type CreateVenueRequest struct {
	Name      string `json:"name" binding:"required"`
	Area      string `json:"area" binding:"required"`
	SportType string `json:"sportType" binding:"required"`
	Price     *int64 `json:"price"`
}

// SetVenueActiveRequest toggles a venue.
type SetVenueActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// TurfSearchResponse wraps availability results.
type TurfSearchResponse struct {
	StatusCode int         `json:"statusCode"`
	TurfList   []*VenueDTO `json:"turfList"`
}

// RegisterRequest holds data to create an account.
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest holds credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse acknowledges a registration.
type RegisterResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	UserID     uuid.UUID `json:"userId"`
}

// AuthResponse carries an issued access token.
type AuthResponse struct {
	StatusCode int       `json:"statusCode"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	UserID     uuid.UUID `json:"userId"`
	Roles      []string  `json:"roles"`
}

// UserDTO is the profile view of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingRequest holds the date and slot to reserve.
type BookingRequest struct {
	BookingDate string `json:"bookingDate" binding:"required"`
	Timeslot    string `json:"timeslot" binding:"required"`
}

// BookingResponse is returned for an admitted booking.
type BookingResponse struct {
	StatusCode       int       `json:"statusCode"`
	BookingID        uuid.UUID `json:"bookingId"`
	ConfirmationCode string    `json:"confirmationCode"`
}

// BookingDTO is the ledger view of a booking.
type BookingDTO struct {
	ID               uuid.UUID `json:"id"`
	TurfID           uuid.UUID `json:"turfId"`
	TurfName         string    `json:"turfName,omitempty"`
	UserID           uuid.UUID `json:"userId"`
	BookingDate      string    `json:"bookingDate"`
	Timeslot         string    `json:"timeslot"`
	Status           string    `json:"status"`
	ConfirmationCode string    `json:"confirmationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UserBookingsResponse wraps a user's bookings.
type UserBookingsResponse struct {
	StatusCode  int           `json:"statusCode"`
	BookingList []*BookingDTO `json:"bookingList"`
}

// BookingPage is one page of the ledger.
type BookingPage struct {
	Items []*BookingDTO
	Total int64
	Page  int
	Limit int
}

func toVenueDTO(v *venueDomain.Venue) *VenueDTO {
	return &VenueDTO{
		ID:        v.ID(),
		Name:      v.Name(),
		Area:      v.Area(),
		SportType: v.SportType(),
		Price:     v.Price(),
	}
}

func toVenueDTOs(venues []*venueDomain.Venue) []*VenueDTO {
	dtos := make([]*VenueDTO, len(venues))
	for i, v := range venues {
		dtos[i] = toVenueDTO(v)
	}
	return dtos
}

func toAdminVenueDTO(v *venueDomain.Venue) *AdminVenueDTO {
	return &AdminVenueDTO{VenueDTO: *toVenueDTO(v), Active: v.Active()}
}

func toUserDTO(u *userDomain.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID(),
		FullName:  u.FullName(),
		Email:     u.Email(),
		Roles:     u.Roles(),
		CreatedAt: u.CreatedAt(),
	}
}

func toBookingDTO(b *bookingDomain.Booking, turfName string) *BookingDTO {
	return &BookingDTO{
		ID:               b.ID(),
		TurfID:           b.VenueID(),
		TurfName:         turfName,
		UserID:           b.UserID(),
		BookingDate:      b.Date().Format(bookingDomain.DateLayout),
		Timeslot:         b.Slot(),
		Status:           string(b.Status()),
		ConfirmationCode: b.ConfirmationCode(),
		CreatedAt:        b.CreatedAt(),
	}
}
