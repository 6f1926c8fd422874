package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/turfhub/service-turf/internal/adapter"
	userDomain "github.com/turfhub/service-turf/internal/domain/user"
	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
	"github.com/turfhub/service-turf/internal/events"
	"github.com/turfhub/service-turf/internal/repository/memory"
	"github.com/turfhub/service-turf/pkg/auth"
)

type fixture struct {
	venues    *memory.VenueRepository
	users     *memory.UserRepository
	bookings  *memory.BookingRepository
	publisher *recordingPublisher
	service   *BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		venues:    memory.NewVenueRepository(),
		users:     memory.NewUserRepository(),
		bookings:  memory.NewBookingRepository(),
		publisher: &recordingPublisher{},
	}
	f.service = NewBookingService(f.bookings, f.venues, f.users,
		adapter.NewLocalSlotLocker(time.Second), f.publisher, zap.NewNop())
	return f
}

func (f *fixture) addVenue(t *testing.T, name, sport string, active bool) *venueDomain.Venue {
	t.Helper()
	price := int64(3000)
	v, err := venueDomain.NewVenue(name, "City Center", sport, &price)
	require.NoError(t, err)
	v.SetActive(active)
	require.NoError(t, f.venues.Save(context.Background(), v))
	return v
}

func (f *fixture) addUser(t *testing.T, email string) *userDomain.User {
	t.Helper()
	u, err := userDomain.NewUser("Test User", email, "$2a$04$hash", []string{auth.RoleUser})
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), u))
	return u
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishBookingCreated(_ context.Context, e events.BookingCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.BookingCreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.BookingCreatedEvent(nil), p.events...)
}

// noLocker admits everyone at once so only the ledger's unique key decides.
type noLocker struct{}

func (noLocker) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

// blindLedger never sees an existing booking, as if every caller lost the
// race between the existence check and the insert.
type blindLedger struct {
	*memory.BookingRepository
}

func (blindLedger) ExistsByVenueDateSlot(context.Context, uuid.UUID, time.Time, string) (bool, error) {
	return false, nil
}

var errStoreDown = errors.New("connection refused")

type brokenLedger struct {
	*memory.BookingRepository
}

func (brokenLedger) ExistsByVenueDateSlot(context.Context, uuid.UUID, time.Time, string) (bool, error) {
	return false, errStoreDown
}
