package stadium

import "time"

// Ticket references one seat of one match booked by one client. The ID
// comes from a sequence owned by the registry: monotonically increasing
// for the registry's lifetime, never reused. The reserved/paid flags
// track how the ticket came to exist and whether it has been paid.
type Ticket struct {
	ID       int
	Client   Client
	Match    *Match
	Sector   string
	Row      int
	Seat     int
	Reserved bool
	Paid     bool
}

// Price computes the ticket price from the match venue's price policy.
// Discount selection is a caller concern and is applied on top of this.
func (t *Ticket) Price() float64 {
	if t.Match == nil || t.Match.Venue() == nil {
		return 0
	}
	return t.Match.Venue().PricePerMatch()
}

// Reservation is a time-bound hold on a seat, wrapping the ticket it
// would become. It expires automatically 12 hours before the match's
// kickoff unless converted to a purchase first.
type Reservation struct {
	Ticket    *Ticket
	CreatedAt time.Time
}

// Expired reports whether the reservation's expiry moment (kickoff minus
// ReservationLead) has been reached at the given instant.
func (r *Reservation) Expired(now time.Time) bool {
	deadline := r.Ticket.Match.Kickoff().Add(-ReservationLead)
	return !now.Before(deadline)
}

// Purchase is a finalized, non-expiring seat sale. Price is captured at
// purchase time so later venue price changes do not rewrite history.
type Purchase struct {
	Ticket    *Ticket
	Price     float64
	CreatedAt time.Time
}
