package stadium

import (
	"errors"
	"testing"
	"time"
)

// kickoffAt returns a kickoff instant far enough in the future that
// reservations made in tests never count as expired against the wall
// clock.
func kickoffAt(day int) time.Time {
	return time.Date(2100, time.March, day, 20, 45, 0, 0, time.UTC)
}

func TestMatchClonesLayout(t *testing.T) {
	v, _ := NewVenue("San Siro", 80000, 30.0)
	m := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, v, kickoffAt(7))

	seat, err := m.Seat("Settore AA", 1, 1)
	if err != nil {
		t.Fatalf("Seat: %v", err)
	}
	seat.setStatus(StatusSold)

	// The template and other matches must not see the change.
	if v.Sectors()[0].Seat(1, 1).Status() != StatusFree {
		t.Error("venue template seat mutated through a match")
	}
	other := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, v, kickoffAt(21))
	if s, _ := other.Seat("Settore AA", 1, 1); s.Status() != StatusFree {
		t.Error("seat state leaked between matches of the same venue")
	}
}

func TestMatchEqualityExcludesVenue(t *testing.T) {
	a, _ := NewVenue("San Siro", 80000, 30.0)
	b, _ := NewVenue("Olimpico", 70000, 25.0)
	ko := kickoffAt(7)
	m1 := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, a, ko)
	m2 := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, b, ko)
	if !m1.Equal(m2) {
		t.Error("matches with same (kickoff, home, away) should be equal even at different venues")
	}
	m3 := NewMatch(Team{Name: "Inter"}, Team{Name: "Milan"}, a, ko)
	if m1.Equal(m3) {
		t.Error("swapped home/away should not be equal")
	}
	m4 := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, a, ko.Add(time.Hour))
	if m1.Equal(m4) {
		t.Error("different kickoff should not be equal")
	}
}

// TestSetVenueDiscardsSeatState documents the destructive contract:
// moving a match to a new venue replaces the whole seat copy.
func TestSetVenueDiscardsSeatState(t *testing.T) {
	a, _ := NewVenue("San Siro", 80000, 30.0)
	b, _ := NewVenue("Olimpico", 70000, 25.0)
	m := NewMatch(Team{Name: "Milan"}, Team{Name: "Roma"}, a, kickoffAt(7))

	seat, _ := m.Seat("Settore AA", 1, 1)
	seat.setStatus(StatusReserved)

	m.SetVenue(b)
	if m.Venue() != b {
		t.Fatal("venue not replaced")
	}
	fresh, err := m.Seat("Settore AA", 1, 1)
	if err != nil {
		t.Fatalf("Seat after SetVenue: %v", err)
	}
	if fresh.Status() != StatusFree {
		t.Error("seat state survived SetVenue; the copy must be replaced wholesale")
	}
}

func TestMatchSeatNotFound(t *testing.T) {
	v, _ := NewVenue("San Siro", 80000, 30.0)
	m := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, v, kickoffAt(7))
	if _, err := m.Seat("Settore ZZ", 1, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown sector: err = %v, want ErrNotFound", err)
	}
	if _, err := m.Seat("Settore AA", 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown seat: err = %v, want ErrNotFound", err)
	}
}
