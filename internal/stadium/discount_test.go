package stadium

import (
	"testing"
	"time"
)

// January 2021: the 10th was a Sunday, the 11th a Monday.
func january(day int) time.Time {
	return time.Date(2021, time.January, day, 15, 0, 0, 0, time.UTC)
}

func discountFixture(t *testing.T) (*Venue, *Match) {
	t.Helper()
	v, err := NewVenue("San Siro", 80000, 30.0)
	if err != nil {
		t.Fatalf("NewVenue: %v", err)
	}
	return v, NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, v, january(10))
}

func TestWeekdayDiscount(t *testing.T) {
	_, sunday := discountFixture(t)
	d := &Discount{
		Kind:    DiscountByWeekday,
		Percent: 20,
		Weekday: time.Sunday,
		Start:   january(1),
		End:     january(31),
	}
	if !WeekdayApplies(d, sunday, january(10)) {
		t.Error("Sunday match in range should qualify")
	}
	monday := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, sunday.Venue(), january(11))
	if WeekdayApplies(d, monday, january(11)) {
		t.Error("Monday match should not qualify for a Sunday discount")
	}
	outside := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, sunday.Venue(), january(10).AddDate(0, 1, 0))
	if WeekdayApplies(d, outside, january(10)) {
		t.Error("match outside the validity range should not qualify")
	}
}

// TestWeekdayDiscountRangeInclusive checks both ends of the validity
// range: boundaries count as inside.
func TestWeekdayDiscountRangeInclusive(t *testing.T) {
	v, _ := discountFixture(t)
	d := &Discount{
		Kind:    DiscountByWeekday,
		Percent: 10,
		Weekday: time.Sunday,
		Start:   time.Date(2021, time.January, 3, 15, 0, 0, 0, time.UTC),  // a Sunday
		End:     time.Date(2021, time.January, 31, 15, 0, 0, 0, time.UTC), // a Sunday
	}
	first := NewMatch(Team{Name: "A"}, Team{Name: "B"}, v, d.Start)
	last := NewMatch(Team{Name: "C"}, Team{Name: "D"}, v, d.End)
	if !d.Applies(first, d.Start) || !d.Applies(last, d.End) {
		t.Error("range boundaries must be inclusive")
	}
}

func TestMatchDiscount(t *testing.T) {
	v, bound := discountFixture(t)
	d := &Discount{
		Kind:    DiscountByMatch,
		Percent: 50,
		Match:   bound,
		Start:   january(5),
		End:     january(15),
	}
	if !MatchApplies(d, bound, january(10)) {
		t.Error("bound match inside the range should qualify")
	}
	if MatchApplies(d, bound, january(20)) {
		t.Error("date outside the range should not qualify")
	}
	other := NewMatch(Team{Name: "Roma"}, Team{Name: "Lazio"}, v, january(10))
	if MatchApplies(d, other, january(10)) {
		t.Error("a different match should not qualify")
	}
	// Equality by tuple: the same fixture at another venue still matches.
	elsewhere, _ := NewVenue("Olimpico", 70000, 25.0)
	twin := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, elsewhere, january(10))
	if !MatchApplies(d, twin, january(10)) {
		t.Error("match equality excludes the venue")
	}
}

func TestVenueDiscount(t *testing.T) {
	v, m := discountFixture(t)
	d := &Discount{Kind: DiscountByVenue, Percent: 15, Venue: v}
	if !VenueApplies(d, m, january(10)) {
		t.Error("match at the bound venue should qualify")
	}
	// Unconditional: no date range check at all.
	if !VenueApplies(d, m, time.Date(2035, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("venue discount must ignore the date entirely")
	}
	other, _ := NewVenue("Olimpico", 70000, 25.0)
	away := NewMatch(Team{Name: "Roma"}, Team{Name: "Lazio"}, other, january(10))
	if VenueApplies(d, away, january(10)) {
		t.Error("match at another venue should not qualify")
	}
}

func TestKindMismatchNeverApplies(t *testing.T) {
	v, m := discountFixture(t)
	weekday := &Discount{Kind: DiscountByWeekday, Weekday: time.Sunday, Start: january(1), End: january(31)}
	if MatchApplies(weekday, m, january(10)) || VenueApplies(weekday, m, january(10)) {
		t.Error("filters must reject discounts of another kind")
	}
	venue := &Discount{Kind: DiscountByVenue, Venue: v}
	if WeekdayApplies(venue, m, january(10)) {
		t.Error("weekday filter must reject a venue discount")
	}
}

func TestDiscountedPrice(t *testing.T) {
	d := &Discount{Percent: 25}
	if got := d.DiscountedPrice(40.0); got != 30.0 {
		t.Errorf("DiscountedPrice(40) = %v, want 30", got)
	}
}
