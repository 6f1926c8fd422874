// Package memory provides mutex-guarded in-memory repositories with the same
// uniqueness semantics as the PostgreSQL schema. Tests use them in place of GORM.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/turfhub/service-turf/internal/domain/booking"
	userDomain "github.com/turfhub/service-turf/internal/domain/user"
	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
	"github.com/turfhub/service-turf/pkg/domain"
)

// VenueRepository is an in-memory venue store.
type VenueRepository struct {
	mu     sync.RWMutex
	venues map[uuid.UUID]*venueDomain.Venue
}

// NewVenueRepository creates an empty VenueRepository.
func NewVenueRepository() *VenueRepository {
	return &VenueRepository{venues: make(map[uuid.UUID]*venueDomain.Venue)}
}

func (r *VenueRepository) Save(_ context.Context, v *venueDomain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.venues {
		if strings.EqualFold(existing.Name(), v.Name()) {
			return domain.NewConflictError("venue name already exists")
		}
	}
	r.venues[v.ID()] = cloneVenue(v)
	return nil
}

func (r *VenueRepository) Update(_ context.Context, v *venueDomain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[v.ID()]; !ok {
		return domain.NewNotFoundError("venue", v.ID().String())
	}
	r.venues[v.ID()] = cloneVenue(v)
	return nil
}

func (r *VenueRepository) FindByID(_ context.Context, id uuid.UUID) (*venueDomain.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.venues[id]
	if !ok {
		return nil, domain.NewNotFoundError("venue", "")
	}
	return cloneVenue(v), nil
}

func (r *VenueRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.venues {
		if strings.EqualFold(v.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *VenueRepository) FindActive(_ context.Context) ([]*venueDomain.Venue, error) {
	return r.filter(func(v *venueDomain.Venue) bool { return v.Active() }), nil
}

func (r *VenueRepository) FindActiveBySportType(_ context.Context, sportType string) ([]*venueDomain.Venue, error) {
	return r.filter(func(v *venueDomain.Venue) bool { return v.Active() && v.Offers(sportType) }), nil
}

func (r *VenueRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.venues)), nil
}

func (r *VenueRepository) filter(keep func(*venueDomain.Venue) bool) []*venueDomain.Venue {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*venueDomain.Venue, 0, len(r.venues))
	for _, v := range r.venues {
		if keep(v) {
			out = append(out, cloneVenue(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func cloneVenue(v *venueDomain.Venue) *venueDomain.Venue {
	return venueDomain.Reconstruct(v.ID(), v.Name(), v.Area(), v.SportType(), v.Price(), v.Active(), v.CreatedAt())
}

// UserRepository is an in-memory user store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*userDomain.User
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *UserRepository) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email already in use")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", "")
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user", "")
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type slotKey struct {
	venueID uuid.UUID
	date    string
	slot    string
}

// BookingRepository is an in-memory ledger that enforces the unique
// (venue, date, slot) key on Save.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings []*bookingDomain.Booking
	bySlot   map[slotKey]*bookingDomain.Booking
	byCode   map[string]*bookingDomain.Booking
}

// NewBookingRepository creates an empty BookingRepository.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bySlot: make(map[slotKey]*bookingDomain.Booking),
		byCode: make(map[string]*bookingDomain.Booking),
	}
}

func keyOf(venueID uuid.UUID, date time.Time, slot string) slotKey {
	return slotKey{venueID: venueID, date: date.Format(bookingDomain.DateLayout), slot: slot}
}

func (r *BookingRepository) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := keyOf(b.VenueID(), b.Date(), b.Slot())
	if _, taken := r.bySlot[k]; taken {
		return domain.NewConflictError("slot already booked")
	}
	if _, taken := r.byCode[b.ConfirmationCode()]; taken {
		return domain.NewConflictError("confirmation code already exists")
	}
	r.bookings = append(r.bookings, b)
	r.bySlot[k] = b
	r.byCode[b.ConfirmationCode()] = b
	return nil
}

func (r *BookingRepository) ExistsByVenueDateSlot(_ context.Context, venueID uuid.UUID, date time.Time, slot string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bySlot[keyOf(venueID, date, slot)]
	return ok, nil
}

func (r *BookingRepository) FindBookedVenueIDs(_ context.Context, venueIDs []uuid.UUID, date time.Time, slot string) (map[uuid.UUID]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booked := make(map[uuid.UUID]bool)
	for _, id := range venueIDs {
		if _, ok := r.bySlot[keyOf(id, date, slot)]; ok {
			booked[id] = true
		}
	}
	return booked, nil
}

func (r *BookingRepository) FindByConfirmationCode(_ context.Context, code string) (*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byCode[code]
	if !ok {
		return nil, domain.NewNotFoundError("booking", "")
	}
	return b, nil
}

func (r *BookingRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*bookingDomain.Booking
	for i := len(r.bookings) - 1; i >= 0; i-- {
		if r.bookings[i].UserID() == userID {
			out = append(out, r.bookings[i])
		}
	}
	return out, nil
}

func (r *BookingRepository) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := int64(len(r.bookings))
	newest := make([]*bookingDomain.Booking, 0, len(r.bookings))
	for i := len(r.bookings) - 1; i >= 0; i-- {
		newest = append(newest, r.bookings[i])
	}
	start := (page - 1) * limit
	if start >= len(newest) {
		return []*bookingDomain.Booking{}, total, nil
	}
	end := start + limit
	if end > len(newest) {
		end = len(newest)
	}
	return newest[start:end], total, nil
}

// Len returns the number of stored bookings.
func (r *BookingRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}
