//go:build integration

package main_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/turfhub/service-turf/internal/adapter"
	"github.com/turfhub/service-turf/internal/application"
	bookingDomain "github.com/turfhub/service-turf/internal/domain/booking"
	userDomain "github.com/turfhub/service-turf/internal/domain/user"
	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
	"github.com/turfhub/service-turf/internal/events"
	"github.com/turfhub/service-turf/internal/repository"
	"github.com/turfhub/service-turf/internal/seed"
	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/domain"
	"github.com/turfhub/service-turf/pkg/kafka"
)

type ledgerFixture struct {
	venues   *repository.GormVenueRepository
	users    *repository.GormUserRepository
	bookings *repository.GormBookingRepository
	venue    *venueDomain.Venue
	user     *userDomain.User
}

func newLedgerFixture(t *testing.T, db *gorm.DB) *ledgerFixture {
	t.Helper()
	ctx := context.Background()
	f := &ledgerFixture{
		venues:   repository.NewGormVenueRepository(db),
		users:    repository.NewGormUserRepository(db),
		bookings: repository.NewGormBookingRepository(db),
	}

	price := int64(3000)
	v, err := venueDomain.NewVenue("Central Football A "+uuid.NewString()[:8], "City Center", "Football", &price)
	require.NoError(t, err)
	require.NoError(t, f.venues.Save(ctx, v))
	f.venue = v

	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	u, err := userDomain.NewUser("Test User", uuid.NewString()[:8]+"@example.com", hash, []string{auth.RoleUser})
	require.NoError(t, err)
	require.NoError(t, f.users.Save(ctx, u))
	f.user = u
	return f
}

// TestBookingRepository_UniqueSlotIsConflict verifies that the schema's
// unique (venue, date, slot) key surfaces as a Conflict domain error.
func TestBookingRepository_UniqueSlotIsConflict(t *testing.T) {
	db := setupPostgres(t)
	f := newLedgerFixture(t, db)
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	first, err := bookingDomain.NewBooking(f.venue.ID(), f.user.ID(), day, "06:00-08:00")
	require.NoError(t, err)
	require.NoError(t, f.bookings.Save(ctx, first))

	dup, err := bookingDomain.NewBooking(f.venue.ID(), f.user.ID(), day, "06:00-08:00")
	require.NoError(t, err)
	err = f.bookings.Save(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	other, err := bookingDomain.NewBooking(f.venue.ID(), f.user.ID(), day, "07:00-09:00")
	require.NoError(t, err)
	require.NoError(t, f.bookings.Save(ctx, other))

	exists, err := f.bookings.ExistsByVenueDateSlot(ctx, f.venue.ID(), day, "06:00-08:00")
	require.NoError(t, err)
	assert.True(t, exists)

	booked, err := f.bookings.FindBookedVenueIDs(ctx, []uuid.UUID{f.venue.ID(), uuid.New()}, day, "06:00-08:00")
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]bool{f.venue.ID(): true}, booked)

	stored, err := f.bookings.FindByConfirmationCode(ctx, first.ConfirmationCode())
	require.NoError(t, err)
	assert.True(t, day.Equal(stored.Date()))
	assert.Equal(t, bookingDomain.StatusBooked, stored.Status())
}

// TestBook_ConcurrentAttemptsAgainstPostgres races many admissions for one
// triple with no application lock; exactly one must win.
func TestBook_ConcurrentAttemptsAgainstPostgres(t *testing.T) {
	db := setupPostgres(t)
	f := newLedgerFixture(t, db)
	svc := application.NewBookingService(f.bookings, f.venues, f.users, passthroughLocker{}, nil, zap.NewNop())

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Book(context.Background(), f.venue.ID(), f.user.ID(),
				application.BookingRequest{BookingDate: "2025-06-01", Timeslot: "06:00-08:00"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, domain.ErrConflict) {
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	var count int64
	require.NoError(t, db.Model(&repository.BookingModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestSeedAndAvailability seeds the catalog and checks availability against Postgres.
func TestSeedAndAvailability(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	venues := repository.NewGormVenueRepository(db)
	bookings := repository.NewGormBookingRepository(db)
	logger := zap.NewNop()

	inserted, err := seed.NewVenueSeeder(venues, logger).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, inserted)

	catalog := application.NewCatalogService(venues, nil, logger)
	types, err := catalog.ListSportTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Badminton", "Basketball", "Cricket", "Football", "Futsal", "Hockey", "Swimming", "Tennis", "Volleyball"}, types)

	_, err = catalog.CreateVenue(ctx, application.CreateVenueRequest{Name: "central football a", Area: "x", SportType: "Football"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	availability := application.NewAvailabilityService(venues, bookings, logger)
	free, err := availability.FindAvailable(ctx, "football", "2025-06-01", "06:00-08:00")
	require.NoError(t, err)
	require.Len(t, free, 5)

	f := newLedgerFixture(t, db)
	booking, err := bookingDomain.NewBooking(free[0].ID, f.user.ID(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "06:00-08:00")
	require.NoError(t, err)
	require.NoError(t, bookings.Save(ctx, booking))

	free, err = availability.FindAvailable(ctx, "FOOTBALL", "2025-06-01", "06:00-08:00")
	require.NoError(t, err)
	assert.Len(t, free, 5) // four seeded plus the fixture's own Football venue
	for _, v := range free {
		assert.NotEqual(t, booking.VenueID(), v.ID)
	}
}

// TestRedisSlotLocker verifies mutual exclusion and token-guarded release.
func TestRedisSlotLocker(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	locker := adapter.NewRedisSlotLocker(client, 5*time.Second, 100*time.Millisecond, zap.NewNop())
	key := adapter.SlotKey(uuid.New(), "2025-06-01", "06:00-08:00")

	release, err := locker.Acquire(ctx, key)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, key)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	release()

	release2, err := locker.Acquire(ctx, key)
	require.NoError(t, err)

	// A stale release from the first holder must not free the second holder's key.
	release()
	_, err = locker.Acquire(ctx, key)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	release2()
	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Less(t, ttl, time.Duration(0))
}

// TestRedisSportTypeCache verifies read-through caching and invalidation.
func TestRedisSportTypeCache(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	cache := adapter.NewRedisSportTypeCache(client, time.Minute, zap.NewNop())

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	cache.Set(ctx, []string{"Cricket", "Football"})
	types, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"Cricket", "Football"}, types)

	cache.Invalidate(ctx)
	_, ok = cache.Get(ctx)
	assert.False(t, ok)
}

// TestBookingCreated_RoundTripThroughKafka publishes a booking event and
// verifies the consumer hands it to the notifier.
func TestBookingCreated_RoundTripThroughKafka(t *testing.T) {
	brokers := setupKafka(t)
	logger := zap.NewNop()

	publisher := events.NewKafkaPublisher(kafka.NewProducer(brokers, logger))
	defer func() { _ = publisher.Close() }()

	notifier := &recordingNotifier{}
	consumer := events.NewBookingEventConsumer(brokers, "test-notifier-"+uuid.NewString()[:8], notifier, logger)
	defer func() { _ = consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	code := uuid.NewString()
	require.NoError(t, publisher.PublishBookingCreated(context.Background(), events.BookingCreatedEvent{
		BookingID:        uuid.NewString(),
		VenueID:          uuid.NewString(),
		VenueName:        "Central Football A",
		BookingDate:      "2025-06-01",
		Timeslot:         "06:00-08:00",
		ConfirmationCode: code,
		CreatedAt:        time.Now().UTC(),
	}))

	require.Eventually(t, func() bool {
		for _, e := range notifier.received() {
			if e.ConfirmationCode == code {
				return true
			}
		}
		return false
	}, 20*time.Second, 200*time.Millisecond, "booking.created was not consumed")
}
