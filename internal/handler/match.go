package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/izio7/Beckenbauer/internal/repository"
	"github.com/izio7/Beckenbauer/internal/stadium"
)

// CreateMatch handles POST /v1/admin/matches: schedules a fixture at a venue
// and clones the venue layout for it.
func (h *AdminHandler) CreateMatch(c echo.Context) error {
	var req struct {
		Home    string `json:"home"`
		Away    string `json:"away"`
		Venue   string `json:"venue"`
		Kickoff string `json:"kickoff"`
	}
	if err := c.Bind(&req); err != nil || req.Home == "" || req.Away == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "home, away, venue and kickoff are required"})
	}
	kickoff, err := time.Parse(time.RFC3339, req.Kickoff)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kickoff must be RFC3339"})
	}
	h.Lock()
	defer h.Unlock()
	v, err := h.Org.VenueByName(req.Venue)
	if err != nil {
		return writeDomainError(c, err)
	}
	m := stadium.NewMatch(stadium.Team{Name: req.Home}, stadium.Team{Name: req.Away}, v, kickoff)
	if err := h.Org.AddMatch(m); err != nil {
		return writeDomainError(c, err)
	}
	h.persistMatch(m)
	return c.JSON(http.StatusCreated, toMatchJSON(m))
}

// MoveMatch handles PUT /v1/admin/matches/venue: relocates a fixture to
// another venue. Destructive by contract: the match's seat copy is
// replaced and every reservation and purchase recorded for it is
// dropped.
func (h *AdminHandler) MoveMatch(c echo.Context) error {
	var req struct {
		matchRef
		Venue string `json:"venue"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Lock()
	defer h.Unlock()
	m, err := req.resolve(h.Org)
	if err != nil {
		return writeDomainError(c, err)
	}
	v, err := h.Org.VenueByName(req.Venue)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.Org.MovePitch(m, v)
	h.persistMatch(m)
	kickoff, home, away := m.Kickoff(), m.Home().Name, m.Away().Name
	h.persist("match tickets", func(ctx context.Context) error {
		return h.Store.Tickets.DeleteByMatch(ctx, kickoff, home, away)
	})
	return c.JSON(http.StatusOK, echo.Map{
		"match":   toMatchJSON(m),
		"warning": "seat states and bookings for this match were discarded",
	})
}

// ExpireReservations handles POST /v1/admin/reservations/expire: an on-demand
// sweep of the 12-hour rule. Idempotent; repeated calls are harmless.
func (h *AdminHandler) ExpireReservations(c echo.Context) error {
	h.Lock()
	expired := h.Org.Registry().ExpireReservations(time.Now())
	h.Unlock()
	for _, res := range expired {
		h.dropTicketRow(res.Ticket.ID)
		publishTicket(res.Ticket, actionExpired, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"expired": len(expired)})
}

// ListReservations handles GET /v1/admin/reservations for managers, filtered
// by match tuple or by venue via query parameters.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	h.Lock()
	defer h.Unlock()
	var filters []stadium.ReservationFilter
	if name := c.QueryParam("venue"); name != "" {
		v, err := h.Org.VenueByName(name)
		if err != nil {
			return writeDomainError(c, err)
		}
		filters = append(filters, stadium.ByVenue(v))
	}
	if c.QueryParam("home") != "" {
		var ref matchRef
		if err := c.Bind(&ref); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match reference"})
		}
		m, err := ref.resolve(h.Org)
		if err != nil {
			return writeDomainError(c, err)
		}
		filters = append(filters, stadium.ByMatch(m))
	}
	out := []ticketJSON{}
	for _, res := range h.Org.Registry().Reservations(filters...) {
		out = append(out, toTicketJSON(res.Ticket, res.Ticket.Price()))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) persistMatch(m *stadium.Match) {
	rec := repository.MatchRecord{
		Kickoff:   m.Kickoff(),
		Home:      m.Home().Name,
		Away:      m.Away().Name,
		VenueName: m.Venue().Name(),
	}
	h.persist("match", func(ctx context.Context) error {
		return h.Store.Matches.Save(ctx, rec)
	})
}

func (h *AdminHandler) dropTicketRow(id int) {
	h.persist("ticket delete", func(ctx context.Context) error {
		return h.Store.Tickets.Delete(ctx, id)
	})
}
