package venue

import (
	"context"

	"github.com/google/uuid"
)

// VenueRepository defines persistence operations for venues.
type VenueRepository interface {
	Save(ctx context.Context, v *Venue) error
	Update(ctx context.Context, v *Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindActive(ctx context.Context) ([]*Venue, error)
	FindActiveBySportType(ctx context.Context, sportType string) ([]*Venue, error)
	Count(ctx context.Context) (int64, error)
}
