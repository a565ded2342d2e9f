// Package handler implements the HTTP surface over the in-memory
// ticketing organization. Handlers serialize access to the organization
// through one mutex: the core is single-actor by design, the HTTP layer
// is where concurrent requests are funneled into one logical caller.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/izio7/Beckenbauer/internal/config"
	"github.com/izio7/Beckenbauer/internal/middleware"
	"github.com/izio7/Beckenbauer/internal/repository"
	"github.com/izio7/Beckenbauer/internal/stadium"
)

// State is the shared dependency bundle of all handlers: configuration,
// the organization (the live model), and the optional store recording
// changes. Lock/Unlock guard every read or write of the organization.
type State struct {
	Cfg   config.Config
	Org   *stadium.Organization
	Store *repository.Store // nil when running without a database

	mu sync.Mutex
}

// NewState builds the shared handler state.
func NewState(cfg config.Config, org *stadium.Organization, store *repository.Store) *State {
	return &State{Cfg: cfg, Org: org, Store: store}
}

// Lock takes the single-writer lock over the organization.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases it.
func (s *State) Unlock() { s.mu.Unlock() }

// persist runs a best-effort write against the store. The in-memory
// model already changed; a storage failure is logged, not surfaced, so
// a broken database never blocks the box office.
func (s *State) persist(what string, f func(ctx context.Context) error) {
	if s.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := f(ctx); err != nil {
		log.Printf("persist %s: %v", what, err)
	}
}

// currentClient returns the authenticated client identity injected by
// the JWT middleware.
func currentClient(c echo.Context) (stadium.Client, bool) {
	username, _ := c.Get(middleware.KeyUsername).(string)
	if username == "" {
		return stadium.Client{}, false
	}
	return stadium.Client{Username: username}, true
}

// writeDomainError translates core sentinels into HTTP responses. The
// booking conflicts map to 409 so the presentation side can tell the
// user exactly which workflow rule was hit.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, stadium.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, stadium.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, stadium.ErrDuplicateReservation),
		errors.Is(err, stadium.ErrPendingReservation),
		errors.Is(err, stadium.ErrSeatUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// matchRef identifies a match by its (kickoff, home, away) tuple in
// request payloads and query strings.
type matchRef struct {
	Home    string `json:"home" query:"home"`
	Away    string `json:"away" query:"away"`
	Kickoff string `json:"kickoff" query:"kickoff"`
}

// resolve parses the kickoff and looks the match up. Callers must hold
// the state lock.
func (ref matchRef) resolve(org *stadium.Organization) (*stadium.Match, error) {
	ko, err := time.Parse(time.RFC3339, ref.Kickoff)
	if err != nil {
		return nil, stadium.ErrNotFound
	}
	return org.MatchBy(ko, ref.Home, ref.Away)
}

// matchJSON is the wire shape of a match.
type matchJSON struct {
	Home    string `json:"home"`
	Away    string `json:"away"`
	Venue   string `json:"venue"`
	Kickoff string `json:"kickoff"`
}

func toMatchJSON(m *stadium.Match) matchJSON {
	return matchJSON{
		Home:    m.Home().Name,
		Away:    m.Away().Name,
		Venue:   m.Venue().Name(),
		Kickoff: m.Kickoff().UTC().Format(time.RFC3339),
	}
}

// ticketJSON is the wire shape of a ticket with its booking flags.
type ticketJSON struct {
	ID       int       `json:"id"`
	Username string    `json:"username"`
	Match    matchJSON `json:"match"`
	Sector   string    `json:"sector"`
	Row      int       `json:"row"`
	Seat     int       `json:"seat"`
	Reserved bool      `json:"reserved"`
	Paid     bool      `json:"paid"`
	Price    float64   `json:"price"`
}

func toTicketJSON(t *stadium.Ticket, price float64) ticketJSON {
	return ticketJSON{
		ID:       t.ID,
		Username: t.Client.Username,
		Match:    toMatchJSON(t.Match),
		Sector:   t.Sector,
		Row:      t.Row,
		Seat:     t.Seat,
		Reserved: t.Reserved,
		Paid:     t.Paid,
		Price:    price,
	}
}
