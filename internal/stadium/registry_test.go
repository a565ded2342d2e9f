package stadium

import (
	"errors"
	"testing"
	"time"
)

func testMatch(t *testing.T) *Match {
	t.Helper()
	v, err := NewVenue("San Siro", 80000, 30.0)
	if err != nil {
		t.Fatalf("NewVenue: %v", err)
	}
	return NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, v, kickoffAt(7))
}

func seatStatus(t *testing.T, m *Match, sector string, row, number int) SeatStatus {
	t.Helper()
	s, err := m.Seat(sector, row, number)
	if err != nil {
		t.Fatalf("Seat(%s,%d,%d): %v", sector, row, number, err)
	}
	return s.Status()
}

func TestReserveTransitionsSeat(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	alice := Client{Username: "alice"}

	res, err := r.Reserve(alice, m, "Settore AA", 1, 1)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if got := seatStatus(t, m, "Settore AA", 1, 1); got != StatusReserved {
		t.Errorf("seat status = %v, want RESERVED", got)
	}
	if !res.Ticket.Reserved || res.Ticket.Paid {
		t.Errorf("ticket flags = (reserved=%v, paid=%v), want (true, false)", res.Ticket.Reserved, res.Ticket.Paid)
	}
}

func TestReserveDuplicateForSameMatch(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	alice := Client{Username: "alice"}

	if _, err := r.Reserve(alice, m, "Settore AA", 1, 1); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}
	// Same client, same match, different seat: still rejected.
	if _, err := r.Reserve(alice, m, "Settore AB", 2, 150); !errors.Is(err, ErrDuplicateReservation) {
		t.Fatalf("second Reserve err = %v, want ErrDuplicateReservation", err)
	}
	// Username comparison is case-insensitive.
	if _, err := r.Reserve(Client{Username: "ALICE"}, m, "Settore AB", 2, 150); !errors.Is(err, ErrDuplicateReservation) {
		t.Fatalf("case-variant Reserve err = %v, want ErrDuplicateReservation", err)
	}
	// A different client may still reserve another seat.
	if _, err := r.Reserve(Client{Username: "bob"}, m, "Settore AB", 2, 150); err != nil {
		t.Fatalf("other client Reserve: %v", err)
	}
}

func TestReserveOccupiedSeat(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	if _, err := r.Reserve(Client{Username: "alice"}, m, "Settore AA", 1, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if _, err := r.Reserve(Client{Username: "bob"}, m, "Settore AA", 1, 1); !errors.Is(err, ErrSeatUnavailable) {
		t.Fatalf("err = %v, want ErrSeatUnavailable", err)
	}
	if _, err := r.Reserve(Client{Username: "bob"}, m, "Settore QQ", 1, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPurchaseWalkUp(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	p, err := r.Purchase(Client{Username: "carol"}, m, "Settore AC", 3, 300)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if got := seatStatus(t, m, "Settore AC", 3, 300); got != StatusSold {
		t.Errorf("seat status = %v, want SOLD", got)
	}
	if p.Price != 30.0 {
		t.Errorf("price = %v, want 30.0", p.Price)
	}
	if !p.Ticket.Paid || p.Ticket.Reserved {
		t.Errorf("ticket flags = (reserved=%v, paid=%v), want (false, true)", p.Ticket.Reserved, p.Ticket.Paid)
	}
}

func TestPurchaseBlockedByPendingReservation(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	alice := Client{Username: "alice"}
	if _, err := r.Reserve(alice, m, "Settore AA", 1, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	// Any seat of the same match is blocked, not just the reserved one.
	if _, err := r.Purchase(alice, m, "Settore AB", 5, 600); !errors.Is(err, ErrPendingReservation) {
		t.Fatalf("Purchase err = %v, want ErrPendingReservation", err)
	}
}

func TestConfirmReservation(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	alice := Client{Username: "alice"}
	res, err := r.Reserve(alice, m, "Settore AA", 1, 1)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	p, err := r.Confirm(res)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got := seatStatus(t, m, "Settore AA", 1, 1); got != StatusSold {
		t.Errorf("seat status = %v, want SOLD", got)
	}
	if p.Ticket != res.Ticket {
		t.Error("purchase must carry the reservation's ticket")
	}
	if !p.Ticket.Paid {
		t.Error("confirmed ticket not marked paid")
	}
	// Confirming twice fails: the reservation is gone.
	if _, err := r.Confirm(res); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Confirm err = %v, want ErrNotFound", err)
	}
	// With the reservation consumed, the client may book again.
	if _, err := r.Reserve(alice, m, "Settore AB", 1, 1); err != nil {
		t.Errorf("Reserve after Confirm: %v", err)
	}
}

func TestCancelFreesSeatImmediately(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	res, err := r.Reserve(Client{Username: "alice"}, m, "Settore AA", 1, 1)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := r.Cancel(res); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := seatStatus(t, m, "Settore AA", 1, 1); got != StatusFree {
		t.Errorf("seat status = %v, want FREE", got)
	}
	if err := r.Cancel(res); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Cancel err = %v, want ErrNotFound", err)
	}
}

// TestExpireReservations exercises the 12-hour rule: a sweep before the
// expiry moment keeps the reservation, a sweep at or after it frees the
// seat, and the sweep is idempotent.
func TestExpireReservations(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	kickoff := m.Kickoff()
	if _, err := r.Reserve(Client{Username: "alice"}, m, "Settore AA", 1, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if expired := r.ExpireReservations(kickoff.Add(-13 * time.Hour)); len(expired) != 0 {
		t.Fatalf("expired %d reservations before the deadline", len(expired))
	}
	if got := seatStatus(t, m, "Settore AA", 1, 1); got != StatusReserved {
		t.Errorf("seat status before deadline = %v, want RESERVED", got)
	}

	if expired := r.ExpireReservations(kickoff.Add(-12 * time.Hour)); len(expired) != 1 {
		t.Fatalf("expired %d reservations at the deadline, want 1", len(expired))
	}
	if got := seatStatus(t, m, "Settore AA", 1, 1); got != StatusFree {
		t.Errorf("seat status after expiry = %v, want FREE", got)
	}

	// Second sweep with the same instant: nothing left to do.
	if expired := r.ExpireReservations(kickoff.Add(-12 * time.Hour)); len(expired) != 0 {
		t.Errorf("second sweep expired %d reservations, want 0", len(expired))
	}
}

// TestExpiredReservationUnblocksClient verifies that a reservation past
// its deadline no longer counts as live for uniqueness checks, even
// before a sweep has removed it.
func TestExpiredReservationUnblocksClient(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	alice := Client{Username: "alice"}
	if _, err := r.Reserve(alice, m, "Settore AA", 1, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	r.now = func() time.Time { return m.Kickoff().Add(-time.Hour) }
	if _, err := r.Purchase(alice, m, "Settore AB", 1, 1); err != nil {
		t.Errorf("Purchase with only an expired reservation pending: %v", err)
	}
}

func TestTicketIDsMonotonic(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	res, _ := r.Reserve(Client{Username: "a"}, m, "Settore AA", 1, 1)
	p1, _ := r.Purchase(Client{Username: "b"}, m, "Settore AA", 1, 2)
	_ = r.Cancel(res)
	p2, _ := r.Purchase(Client{Username: "c"}, m, "Settore AA", 1, 3)

	if res.Ticket.ID != 1 || p1.Ticket.ID != 2 || p2.Ticket.ID != 3 {
		t.Errorf("ticket IDs = %d, %d, %d, want 1, 2, 3 (no reuse after cancel)",
			res.Ticket.ID, p1.Ticket.ID, p2.Ticket.ID)
	}
}

func TestSeatObserverNotified(t *testing.T) {
	r := NewRegistry()
	m := testMatch(t)
	type change struct{ from, to SeatStatus }
	var changes []change
	r.Subscribe(SeatObserverFunc(func(_ *Match, _ *Seat, from, to SeatStatus) {
		changes = append(changes, change{from, to})
	}))

	res, _ := r.Reserve(Client{Username: "alice"}, m, "Settore AA", 1, 1)
	_ = r.Cancel(res)
	_, _ = r.Purchase(Client{Username: "alice"}, m, "Settore AA", 1, 1)

	want := []change{
		{StatusFree, StatusReserved},
		{StatusReserved, StatusFree},
		{StatusFree, StatusSold},
	}
	if len(changes) != len(want) {
		t.Fatalf("observed %d transitions, want %d", len(changes), len(want))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestReservationQueries(t *testing.T) {
	r := NewRegistry()
	sanSiro, _ := NewVenue("San Siro", 80000, 30.0)
	olimpico, _ := NewVenue("Olimpico", 70000, 25.0)
	m1 := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, sanSiro, kickoffAt(7))
	m2 := NewMatch(Team{Name: "Roma"}, Team{Name: "Lazio"}, olimpico, kickoffAt(14))

	alice := Client{Username: "alice"}
	if _, err := r.Reserve(alice, m1, "Settore AA", 1, 1); err != nil {
		t.Fatalf("Reserve m1: %v", err)
	}
	if _, err := r.Reserve(alice, m2, "Settore AA", 1, 1); err != nil {
		t.Fatalf("Reserve m2: %v", err)
	}
	if _, err := r.Reserve(Client{Username: "bob"}, m2, "Settore AB", 1, 1); err != nil {
		t.Fatalf("Reserve bob: %v", err)
	}

	if got := len(r.Reservations(ByMatch(m2))); got != 2 {
		t.Errorf("reservations for m2 = %d, want 2", got)
	}
	if got := len(r.Reservations(ByVenue(sanSiro))); got != 1 {
		t.Errorf("reservations at San Siro = %d, want 1", got)
	}
	if got := len(r.Reservations(ByClient(alice))); got != 2 {
		t.Errorf("reservations by alice = %d, want 2", got)
	}
	if got := len(r.Reservations(ByClient(alice), ByMatch(m2))); got != 1 {
		t.Errorf("reservations by alice for m2 = %d, want 1", got)
	}
}

func TestRestoreRebuildsState(t *testing.T) {
	v, _ := NewVenue("San Siro", 80000, 30.0)
	m := NewMatch(Team{Name: "Milan"}, Team{Name: "Inter"}, v, kickoffAt(7))
	r := NewRegistry()

	sold := &Ticket{ID: 7, Client: Client{Username: "bob"}, Match: m, Sector: "Settore AA", Row: 1, Seat: 2}
	if err := r.RestorePurchase(sold, 30.0, time.Now()); err != nil {
		t.Fatalf("RestorePurchase: %v", err)
	}
	held := &Ticket{ID: 4, Client: Client{Username: "alice"}, Match: m, Sector: "Settore AA", Row: 1, Seat: 1}
	if err := r.RestoreReservation(held, time.Now()); err != nil {
		t.Fatalf("RestoreReservation: %v", err)
	}

	if got := seatStatus(t, m, "Settore AA", 1, 1); got != StatusReserved {
		t.Errorf("restored reservation seat = %v, want RESERVED", got)
	}
	if got := seatStatus(t, m, "Settore AA", 1, 2); got != StatusSold {
		t.Errorf("restored purchase seat = %v, want SOLD", got)
	}
	// The sequence continues past the highest restored ID.
	p, err := r.Purchase(Client{Username: "carol"}, m, "Settore AA", 1, 3)
	if err != nil {
		t.Fatalf("Purchase after restore: %v", err)
	}
	if p.Ticket.ID != 8 {
		t.Errorf("next ticket ID = %d, want 8", p.Ticket.ID)
	}
}
