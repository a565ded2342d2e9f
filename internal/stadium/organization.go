package stadium

import (
	"fmt"
	"strings"
	"time"
)

// Organization is the aggregate root of the ticketing system: the venue
// catalog, the scheduled matches, the discount catalog and the booking
// registry. Handlers talk to an Organization; nothing below it knows
// about HTTP or storage.
type Organization struct {
	Name      string
	venues    []*Venue
	matches   []*Match
	discounts []*Discount
	registry  *Registry
}

// NewOrganization returns an empty organization with a fresh registry.
func NewOrganization(name string) *Organization {
	return &Organization{Name: name, registry: NewRegistry()}
}

// Registry returns the organization's booking registry.
func (o *Organization) Registry() *Registry { return o.registry }

// AddVenue registers a venue. Venue names are unique, case-insensitive;
// a clash fails with ErrValidation.
func (o *Organization) AddVenue(v *Venue) error {
	for _, cur := range o.venues {
		if cur.Equal(v) {
			return fmt.Errorf("%w: venue %q already exists", ErrValidation, v.Name())
		}
	}
	o.venues = append(o.venues, v)
	return nil
}

// Venues returns the registered venues.
func (o *Organization) Venues() []*Venue { return o.venues }

// VenueByName resolves a venue by its case-insensitive name.
func (o *Organization) VenueByName(name string) (*Venue, error) {
	for _, v := range o.venues {
		if strings.EqualFold(v.Name(), name) {
			return v, nil
		}
	}
	return nil, ErrNotFound
}

// AddMatch schedules a match. Scheduling the same (kickoff, home, away)
// tuple twice fails with ErrValidation, whatever the venue.
func (o *Organization) AddMatch(m *Match) error {
	for _, cur := range o.matches {
		if cur.Equal(m) {
			return fmt.Errorf("%w: match %s - %s at %s already scheduled",
				ErrValidation, m.Home().Name, m.Away().Name, m.Kickoff().Format(time.RFC3339))
		}
	}
	o.matches = append(o.matches, m)
	return nil
}

// Matches returns the scheduled matches.
func (o *Organization) Matches() []*Match { return o.matches }

// MatchBy resolves a match by its identity tuple.
func (o *Organization) MatchBy(kickoff time.Time, home, away string) (*Match, error) {
	for _, m := range o.matches {
		if m.Is(kickoff, home, away) {
			return m, nil
		}
	}
	return nil, ErrNotFound
}

// MovePitch relocates a match to another venue: booking records for the
// match are dropped from the registry and the seat copy is replaced.
func (o *Organization) MovePitch(m *Match, v *Venue) {
	o.registry.DropByMatch(m)
	m.SetVenue(v)
}

// AddDiscount appends a discount to the catalog.
func (o *Organization) AddDiscount(d *Discount) { o.discounts = append(o.discounts, d) }

// Discounts returns the discount catalog.
func (o *Organization) Discounts() []*Discount { return o.discounts }

// ApplicableDiscounts iterates the catalog and returns the discounts
// whose filter accepts the match on the given date.
func (o *Organization) ApplicableDiscounts(m *Match, on time.Time) []*Discount {
	var out []*Discount
	for _, d := range o.discounts {
		if d.Applies(m, on) {
			out = append(out, d)
		}
	}
	return out
}

// BestPrice returns the lowest price for a ticket of the match on the
// given date, considering every applicable discount, together with the
// discount that produced it (nil when none applies). Picking the best
// discount is a policy of this caller-facing helper, not of the filters.
func (o *Organization) BestPrice(m *Match, on time.Time) (float64, *Discount) {
	price := m.Venue().PricePerMatch()
	var best *Discount
	for _, d := range o.ApplicableDiscounts(m, on) {
		if p := d.DiscountedPrice(m.Venue().PricePerMatch()); p < price {
			price = p
			best = d
		}
	}
	return price, best
}
