package stadium

import "time"

// ReservationLead is how long before kickoff an unconverted reservation
// expires.
const ReservationLead = 12 * time.Hour

// SeatObserver is notified on every seat status transition the registry
// performs. Subscribers (a presentation layer, an event publisher) react
// to the change; they never drive it.
type SeatObserver interface {
	SeatStatusChanged(m *Match, s *Seat, from, to SeatStatus)
}

// SeatObserverFunc adapts a function to the SeatObserver interface.
type SeatObserverFunc func(m *Match, s *Seat, from, to SeatStatus)

// SeatStatusChanged calls f.
func (f SeatObserverFunc) SeatStatusChanged(m *Match, s *Seat, from, to SeatStatus) {
	f(m, s, from, to)
}

// Registry enforces uniqueness and lifecycle of reservations and
// purchases. It is the single writer of seat status: it reaches into a
// match's seat graph to transition states, and owns the collections of
// reservation and purchase records plus the ticket ID sequence.
//
// All operations are synchronous and assume one logical caller; the
// layers above serialize access.
type Registry struct {
	nextTicketID int
	reservations []*Reservation
	purchases    []*Purchase
	observers    []SeatObserver
	now          func() time.Time
}

// NewRegistry returns an empty registry with the ticket sequence at 1.
func NewRegistry() *Registry {
	return &Registry{nextTicketID: 1, now: time.Now}
}

// Subscribe registers an observer for seat status transitions.
func (r *Registry) Subscribe(o SeatObserver) {
	if o != nil {
		r.observers = append(r.observers, o)
	}
}

func (r *Registry) transition(m *Match, s *Seat, to SeatStatus) {
	from := s.setStatus(to)
	for _, o := range r.observers {
		o.SeatStatusChanged(m, s, from, to)
	}
}

func (r *Registry) issueTicket(c Client, m *Match, sector string, row, seat int) *Ticket {
	t := &Ticket{
		ID:     r.nextTicketID,
		Client: c,
		Match:  m,
		Sector: sector,
		Row:    row,
		Seat:   seat,
	}
	r.nextTicketID++
	return t
}

// liveReservation returns the client's non-expired reservation for the
// match, if any. Client equality is case-insensitive on username; match
// equality is the (kickoff, home, away) tuple.
func (r *Registry) liveReservation(c Client, m *Match) *Reservation {
	now := r.now()
	for _, res := range r.reservations {
		if res.Ticket.Client.Equal(c) && res.Ticket.Match.Equal(m) && !res.Expired(now) {
			return res
		}
	}
	return nil
}

// Reserve places a hold on the given seat for the client. It fails with
// ErrDuplicateReservation when the client already holds a live
// reservation for the match (whatever the seat), with ErrNotFound when
// the seat reference does not resolve, and with ErrSeatUnavailable when
// the seat is not FREE. On success the seat moves FREE -> RESERVED and
// subscribers are notified.
func (r *Registry) Reserve(c Client, m *Match, sector string, row, seatNumber int) (*Reservation, error) {
	if r.liveReservation(c, m) != nil {
		return nil, ErrDuplicateReservation
	}
	seat, err := m.Seat(sector, row, seatNumber)
	if err != nil {
		return nil, err
	}
	if seat.Status() != StatusFree {
		return nil, ErrSeatUnavailable
	}
	t := r.issueTicket(c, m, sector, row, seatNumber)
	t.Reserved = true
	res := &Reservation{Ticket: t, CreatedAt: r.now()}
	r.reservations = append(r.reservations, res)
	r.transition(m, seat, StatusReserved)
	return res, nil
}

// Purchase sells the given seat to the client outright (walk-up sale,
// FREE -> SOLD). It fails with ErrPendingReservation when the client
// holds a live reservation for the match: the reservation is not
// auto-consumed, the caller must confirm or cancel it instead.
func (r *Registry) Purchase(c Client, m *Match, sector string, row, seatNumber int) (*Purchase, error) {
	if r.liveReservation(c, m) != nil {
		return nil, ErrPendingReservation
	}
	seat, err := m.Seat(sector, row, seatNumber)
	if err != nil {
		return nil, err
	}
	if seat.Status() != StatusFree {
		return nil, ErrSeatUnavailable
	}
	t := r.issueTicket(c, m, sector, row, seatNumber)
	t.Paid = true
	p := &Purchase{Ticket: t, Price: t.Price(), CreatedAt: r.now()}
	r.purchases = append(r.purchases, p)
	r.transition(m, seat, StatusSold)
	return p, nil
}

// Confirm converts a reservation into a purchase: the held seat moves
// RESERVED -> SOLD, the reservation is removed and a purchase record for
// the same ticket is created. Confirming a reservation the registry does
// not know (already expired, cancelled or confirmed) fails with
// ErrNotFound.
func (r *Registry) Confirm(res *Reservation) (*Purchase, error) {
	if !r.remove(res) {
		return nil, ErrNotFound
	}
	t := res.Ticket
	t.Paid = true
	p := &Purchase{Ticket: t, Price: t.Price(), CreatedAt: r.now()}
	r.purchases = append(r.purchases, p)
	if seat, err := t.Match.Seat(t.Sector, t.Row, t.Seat); err == nil {
		r.transition(t.Match, seat, StatusSold)
	}
	return p, nil
}

// Cancel removes a reservation and frees its seat immediately, not
// subject to the 12-hour rule. Unknown reservations fail with ErrNotFound.
func (r *Registry) Cancel(res *Reservation) error {
	if !r.remove(res) {
		return ErrNotFound
	}
	r.releaseSeat(res)
	return nil
}

// ExpireReservations sweeps every reservation whose expiry moment has
// been reached at now, removing it and resetting its seat to FREE. The
// sweep is idempotent: a second call with the same now finds nothing left
// to do. It returns the reservations it expired.
func (r *Registry) ExpireReservations(now time.Time) []*Reservation {
	var expired []*Reservation
	kept := r.reservations[:0]
	for _, res := range r.reservations {
		if res.Expired(now) {
			expired = append(expired, res)
			continue
		}
		kept = append(kept, res)
	}
	r.reservations = kept
	for _, res := range expired {
		r.releaseSeat(res)
	}
	return expired
}

func (r *Registry) remove(res *Reservation) bool {
	for i, cur := range r.reservations {
		if cur == res {
			r.reservations = append(r.reservations[:i], r.reservations[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) releaseSeat(res *Reservation) {
	t := res.Ticket
	seat, err := t.Match.Seat(t.Sector, t.Row, t.Seat)
	if err != nil {
		return
	}
	if seat.Status() == StatusReserved {
		r.transition(t.Match, seat, StatusFree)
	}
}

// ReservationFilter selects reservations from the registry.
type ReservationFilter func(*Reservation) bool

// ByMatch keeps reservations for the given match.
func ByMatch(m *Match) ReservationFilter {
	return func(res *Reservation) bool { return res.Ticket.Match.Equal(m) }
}

// ByVenue keeps reservations for matches played at the given venue.
func ByVenue(v *Venue) ReservationFilter {
	return func(res *Reservation) bool { return res.Ticket.Match.Venue().Equal(v) }
}

// ByClient keeps reservations held by the given client.
func ByClient(c Client) ReservationFilter {
	return func(res *Reservation) bool { return res.Ticket.Client.Equal(c) }
}

// Reservations returns the live reservations matching every given filter.
func (r *Registry) Reservations(filters ...ReservationFilter) []*Reservation {
	var out []*Reservation
next:
	for _, res := range r.reservations {
		for _, f := range filters {
			if !f(res) {
				continue next
			}
		}
		out = append(out, res)
	}
	return out
}

// Purchases returns purchase records, optionally restricted to a client.
func (r *Registry) Purchases(c *Client) []*Purchase {
	if c == nil {
		return append([]*Purchase(nil), r.purchases...)
	}
	var out []*Purchase
	for _, p := range r.purchases {
		if p.Ticket.Client.Equal(*c) {
			out = append(out, p)
		}
	}
	return out
}

// HasLiveReservation reports whether the client holds a live reservation
// for the match.
func (r *Registry) HasLiveReservation(c Client, m *Match) bool {
	return r.liveReservation(c, m) != nil
}

// FindReservation resolves a reservation by its ticket ID.
func (r *Registry) FindReservation(ticketID int) (*Reservation, error) {
	for _, res := range r.reservations {
		if res.Ticket.ID == ticketID {
			return res, nil
		}
	}
	return nil, ErrNotFound
}

// DropByMatch removes every reservation and purchase recorded for the
// match without touching seat state. Used when a match is rescheduled to
// another venue and its seat copy is replaced wholesale.
func (r *Registry) DropByMatch(m *Match) {
	keptRes := r.reservations[:0]
	for _, res := range r.reservations {
		if !res.Ticket.Match.Equal(m) {
			keptRes = append(keptRes, res)
		}
	}
	r.reservations = keptRes
	keptPur := r.purchases[:0]
	for _, p := range r.purchases {
		if !p.Ticket.Match.Equal(m) {
			keptPur = append(keptPur, p)
		}
	}
	r.purchases = keptPur
}

// RestoreReservation re-creates a reservation from persisted state,
// marking the seat RESERVED and bumping the ID sequence past the ticket
// ID. Used when rebuilding the in-memory state at startup.
func (r *Registry) RestoreReservation(t *Ticket, createdAt time.Time) error {
	seat, err := t.Match.Seat(t.Sector, t.Row, t.Seat)
	if err != nil {
		return err
	}
	t.Reserved = true
	r.reservations = append(r.reservations, &Reservation{Ticket: t, CreatedAt: createdAt})
	seat.setStatus(StatusReserved)
	r.bumpSequence(t.ID)
	return nil
}

// RestorePurchase re-creates a purchase from persisted state, marking
// the seat SOLD and bumping the ID sequence past the ticket ID.
func (r *Registry) RestorePurchase(t *Ticket, price float64, createdAt time.Time) error {
	seat, err := t.Match.Seat(t.Sector, t.Row, t.Seat)
	if err != nil {
		return err
	}
	t.Paid = true
	r.purchases = append(r.purchases, &Purchase{Ticket: t, Price: price, CreatedAt: createdAt})
	seat.setStatus(StatusSold)
	r.bumpSequence(t.ID)
	return nil
}

func (r *Registry) bumpSequence(id int) {
	if id >= r.nextTicketID {
		r.nextTicketID = id + 1
	}
}
