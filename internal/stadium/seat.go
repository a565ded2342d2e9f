package stadium

// SeatStatus is the occupancy state of one seat within one match.
// A seat starts FREE, moves to RESERVED when a client holds it, and to
// SOLD when the sale is finalized. SOLD is terminal; RESERVED can fall
// back to FREE on cancellation or expiry.
type SeatStatus int

const (
	StatusFree SeatStatus = iota
	StatusReserved
	StatusSold
)

// String returns the wire/display name of the status.
func (s SeatStatus) String() string {
	switch s {
	case StatusFree:
		return "FREE"
	case StatusReserved:
		return "RESERVED"
	case StatusSold:
		return "SOLD"
	default:
		return "UNKNOWN"
	}
}

// Seat is the smallest unit of a layout. Its identity is the triple
// (sector name, row, seat number); there is no standalone primary key.
// Status transitions are package-private: only the booking registry may
// move a seat between states, everything else reads.
type Seat struct {
	sector *Sector
	row    int
	number int
	status SeatStatus
}

// Sector returns the sector that owns this seat.
func (s *Seat) Sector() *Sector { return s.sector }

// Row returns the 1-based row number within the sector.
func (s *Seat) Row() int { return s.row }

// Number returns the 1-based seat number within the sector.
func (s *Seat) Number() int { return s.number }

// Status returns the current occupancy state.
func (s *Seat) Status() SeatStatus { return s.status }

// setStatus performs the transition. Callers (the registry) are
// responsible for notifying subscribers with the returned previous state.
func (s *Seat) setStatus(st SeatStatus) SeatStatus {
	old := s.status
	s.status = st
	return old
}
