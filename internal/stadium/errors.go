// Package stadium implements the core ticketing domain: stadium layouts,
// per-match seat state, the booking registry and discount eligibility.
// It is deliberately free of transport, storage and rendering concerns;
// those live in the surrounding packages and talk to this one.
package stadium

import "errors"

// Sentinel errors returned by core operations. Callers are expected to
// match them with errors.Is and decide user messaging themselves; none
// of these is fatal to the process.
var (
	// ErrValidation wraps capacity or price bounds violations at
	// construction or mutation time. The failed call leaves no partial
	// state behind.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateReservation is returned when a client already holds a
	// live reservation for the same match, regardless of seat.
	ErrDuplicateReservation = errors.New("client already holds a reservation for this match")

	// ErrPendingReservation is returned on a direct purchase attempt
	// while a live reservation exists for (client, match); the caller
	// must confirm or cancel the reservation instead.
	ErrPendingReservation = errors.New("a pending reservation exists for this match")

	// ErrNotFound is returned when a seat, sector, venue, match or
	// reservation reference does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrSeatUnavailable is returned when the target seat is not FREE.
	ErrSeatUnavailable = errors.New("seat is not available")
)
