package stadium

import "time"

// Match associates two teams, a venue and a kickoff time. At creation it
// takes its own deep copy of the venue's sector layout, so seat states
// evolve per match and a later capacity change on the venue never touches
// matches already scheduled there.
//
// Match equality is the tuple (kickoff, home, away) and deliberately
// excludes the venue, mirroring the system this one replaces. Two matches
// with the same teams and kickoff at different venues therefore collide.
type Match struct {
	home    Team
	away    Team
	venue   *Venue
	kickoff time.Time
	sectors []*Sector
}

// NewMatch schedules a match at the given venue and clones its layout.
func NewMatch(home, away Team, venue *Venue, kickoff time.Time) *Match {
	return &Match{
		home:    home,
		away:    away,
		venue:   venue,
		kickoff: kickoff,
		sectors: venue.CloneSectors(),
	}
}

// Home returns the home team.
func (m *Match) Home() Team { return m.home }

// Away returns the away team.
func (m *Match) Away() Team { return m.away }

// Venue returns the venue the match is played at.
func (m *Match) Venue() *Venue { return m.venue }

// Kickoff returns the scheduled start time.
func (m *Match) Kickoff() time.Time { return m.kickoff }

// Sectors returns this match's own copy of the venue layout.
func (m *Match) Sectors() []*Sector { return m.sectors }

// Sector returns the named sector of this match's layout, or ErrNotFound.
func (m *Match) Sector(name string) (*Sector, error) {
	for _, s := range m.sectors {
		if s.name == name {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

// Seat resolves (sector name, row, seat number) within this match's
// layout, or returns ErrNotFound.
func (m *Match) Seat(sector string, row, number int) (*Seat, error) {
	sec, err := m.Sector(sector)
	if err != nil {
		return nil, err
	}
	if seat := sec.Seat(row, number); seat != nil {
		return seat, nil
	}
	return nil, ErrNotFound
}

// SetVenue moves the match to another venue and replaces the sector copy
// entirely. Destructive: every seat state previously recorded for this
// match is discarded. Reservations and purchases referencing the match
// should be dropped by the caller before rescheduling.
func (m *Match) SetVenue(venue *Venue) {
	if venue == nil {
		return
	}
	m.venue = venue
	m.sectors = venue.CloneSectors()
}

// SetKickoff reschedules the match. Seat states are kept; note that the
// match's identity tuple changes with it.
func (m *Match) SetKickoff(t time.Time) { m.kickoff = t }

// Equal reports whether two matches are the same fixture: equal kickoff
// instant, home team and away team. The venue is not part of the tuple.
func (m *Match) Equal(other *Match) bool {
	if other == nil {
		return false
	}
	return m.kickoff.Equal(other.kickoff) && m.home.Equal(other.home) && m.away.Equal(other.away)
}

// Is reports whether the match has the given identity tuple.
func (m *Match) Is(kickoff time.Time, home, away string) bool {
	return m.kickoff.Equal(kickoff) && m.home.Name == home && m.away.Name == away
}
