package venue

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Venue is a bookable sports turf.
type Venue struct {
	id        uuid.UUID
	name      string
	area      string
	sportType string
	price     *int64
	active    bool
	createdAt time.Time
}

// NewVenue validates and creates an active venue. price may be nil.
func NewVenue(name, area, sportType string, price *int64) (*Venue, error) {
	name = strings.TrimSpace(name)
	area = strings.TrimSpace(area)
	sportType = strings.TrimSpace(sportType)

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if area == "" {
		return nil, fmt.Errorf("area is required")
	}
	if sportType == "" {
		return nil, fmt.Errorf("sport type is required")
	}
	if price != nil && *price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}

	return &Venue{
		id:        uuid.New(),
		name:      name,
		area:      area,
		sportType: sportType,
		price:     price,
		active:    true,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Venue from persistence.
func Reconstruct(id uuid.UUID, name, area, sportType string, price *int64, active bool, createdAt time.Time) *Venue {
	return &Venue{
		id: id, name: name, area: area, sportType: sportType,
		price: price, active: active, createdAt: createdAt,
	}
}

// SetActive toggles whether the venue is offered to customers.
func (v *Venue) SetActive(active bool) { v.active = active }

// Offers reports whether the venue's sport type equals sportType ignoring case.
func (v *Venue) Offers(sportType string) bool {
	return strings.EqualFold(strings.TrimSpace(v.sportType), strings.TrimSpace(sportType))
}

// Getters.
func (v *Venue) ID() uuid.UUID        { return v.id }
func (v *Venue) Name() string         { return v.name }
func (v *Venue) Area() string         { return v.area }
func (v *Venue) SportType() string    { return v.sportType }
func (v *Venue) Price() *int64        { return v.price }
func (v *Venue) Active() bool         { return v.active }
func (v *Venue) CreatedAt() time.Time { return v.createdAt }

// NormalizeSportType trims s and capitalises it as "Football". It returns ""
// for blank input.
func NormalizeSportType(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// SportTypes returns the distinct normalized sport types of venues, sorted.
func SportTypes(venues []*Venue) []string {
	seen := make(map[string]struct{}, len(venues))
	types := make([]string, 0, len(venues))
	for _, v := range venues {
		t := NormalizeSportType(v.sportType)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
