// Package seed populates an empty catalog with the default venues.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
)

type venueSeed struct {
	name, area, sport string
	price             int64
}

var defaultVenues = []venueSeed{
	{"Central Football A", "City Center", "Football", 3000},
	{"Central Football B", "City Center", "Football", 3200},
	{"Central Cricket A", "City Center", "Cricket", 3500},
	{"Central Cricket B", "City Center", "Cricket", 3600},
	{"Central Futsal A", "City Center", "Futsal", 2500},
	{"Central Futsal B", "City Center", "Futsal", 2600},
	{"Central Basketball A", "City Center", "Basketball", 2700},
	{"Central Volleyball A", "City Center", "Volleyball", 2300},
	{"Central Tennis A", "City Center", "Tennis", 2100},

	{"North Football A", "North Side", "Football", 2800},
	{"North Football B", "North Side", "Football", 2900},
	{"North Tennis A", "North Side", "Tennis", 2000},
	{"North Badminton A", "North Side", "Badminton", 1500},
	{"North Badminton B", "North Side", "Badminton", 1600},
	{"North Hockey A", "North Side", "Hockey", 3300},
	{"North Volleyball A", "North Side", "Volleyball", 2200},
	{"North Swimming Pool A", "North Side", "Swimming", 4000},

	{"South Football A", "South Zone", "Football", 3100},
	{"South Cricket A", "South Zone", "Cricket", 3700},
	{"South Cricket B", "South Zone", "Cricket", 3800},
	{"South Futsal A", "South Zone", "Futsal", 2550},
	{"South Tennis A", "South Zone", "Tennis", 2050},
	{"South Basketball A", "South Zone", "Basketball", 2750},
	{"South Volleyball A", "South Zone", "Volleyball", 2400},
	{"South Badminton A", "South Zone", "Badminton", 1550},
	{"South Swimming Pool A", "South Zone", "Swimming", 4200},
}

// VenueSeeder inserts the default venues into an empty catalog.
type VenueSeeder struct {
	repo   venueDomain.VenueRepository
	logger *zap.Logger
}

// NewVenueSeeder creates a VenueSeeder.
func NewVenueSeeder(repo venueDomain.VenueRepository, logger *zap.Logger) *VenueSeeder {
	return &VenueSeeder{repo: repo, logger: logger}
}

// Run seeds only when no venue exists, skipping names already present.
// It returns the number of venues inserted.
func (s *VenueSeeder) Run(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count venues: %w", err)
	}
	if count > 0 {
		s.logger.Debug("venue catalog already populated", zap.Int64("count", count))
		return 0, nil
	}

	inserted := 0
	for _, seed := range defaultVenues {
		exists, err := s.repo.ExistsByName(ctx, seed.name)
		if err != nil {
			return inserted, fmt.Errorf("check venue %q: %w", seed.name, err)
		}
		if exists {
			continue
		}

		price := seed.price
		v, err := venueDomain.NewVenue(seed.name, seed.area, seed.sport, &price)
		if err != nil {
			return inserted, fmt.Errorf("build venue %q: %w", seed.name, err)
		}
		if err := s.repo.Save(ctx, v); err != nil {
			return inserted, fmt.Errorf("save venue %q: %w", seed.name, err)
		}
		inserted++
	}

	s.logger.Info("venue catalog seeded", zap.Int("inserted", inserted))
	return inserted, nil
}
