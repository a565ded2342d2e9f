package stadium

import "time"

// DiscountKind scopes a discount to a weekday, a specific match or a
// venue.
type DiscountKind int

const (
	DiscountByWeekday DiscountKind = iota
	DiscountByMatch
	DiscountByVenue
)

// Discount is a price-adjustment rule. Depending on Kind it carries a
// weekday plus validity range, a bound match plus validity range, or a
// bound venue (unconditional once attached). Percent is the reduction
// applied to the base ticket price, in [0, 100].
type Discount struct {
	Kind    DiscountKind
	Percent float64

	Weekday time.Weekday // DiscountByWeekday
	Match   *Match       // DiscountByMatch
	Venue   *Venue       // DiscountByVenue

	Start time.Time // validity range, inclusive on both ends
	End   time.Time
}

// inRange reports whether t falls within [Start, End], inclusive.
func (d *Discount) inRange(t time.Time) bool {
	return !t.Before(d.Start) && !t.After(d.End)
}

// WeekdayApplies reports whether a weekday-scoped discount covers the
// match: the match's kickoff falls on the configured weekday and lies
// within the validity range. The date-to-check argument is ignored for
// this kind; eligibility hangs on the match date itself.
func WeekdayApplies(d *Discount, m *Match, _ time.Time) bool {
	if d.Kind != DiscountByWeekday {
		return false
	}
	return m.Kickoff().Weekday() == d.Weekday && d.inRange(m.Kickoff())
}

// MatchApplies reports whether a match-scoped discount covers the match:
// the match equals the bound one and the date-to-check lies within the
// validity range.
func MatchApplies(d *Discount, m *Match, on time.Time) bool {
	if d.Kind != DiscountByMatch || d.Match == nil {
		return false
	}
	return m.Equal(d.Match) && d.inRange(on)
}

// VenueApplies reports whether a venue-scoped discount covers the match:
// the match is played at the bound venue. No date check; the discount is
// unconditional once attached to the venue.
func VenueApplies(d *Discount, m *Match, _ time.Time) bool {
	if d.Kind != DiscountByVenue || d.Venue == nil {
		return false
	}
	return m.Venue().Equal(d.Venue)
}

// Applies dispatches to the filter for the discount's kind.
func (d *Discount) Applies(m *Match, on time.Time) bool {
	switch d.Kind {
	case DiscountByWeekday:
		return WeekdayApplies(d, m, on)
	case DiscountByMatch:
		return MatchApplies(d, m, on)
	case DiscountByVenue:
		return VenueApplies(d, m, on)
	default:
		return false
	}
}

// DiscountedPrice applies the discount percent to a base price.
func (d *Discount) DiscountedPrice(base float64) float64 {
	return base * (100 - d.Percent) / 100
}
