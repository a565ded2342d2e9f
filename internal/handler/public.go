package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/izio7/Beckenbauer/internal/stadium"
)

// PublicHandler serves the browse endpoints available to any
// authenticated user: venues, the match calendar, seat availability and
// price quotes.
type PublicHandler struct{ *State }

func NewPublicHandler(s *State) *PublicHandler { return &PublicHandler{State: s} }

// ListVenues handles GET /v1/venues.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	h.Lock()
	defer h.Unlock()
	out := []venueJSON{}
	for _, v := range h.Org.Venues() {
		out = append(out, toVenueJSON(v))
	}
	return c.JSON(http.StatusOK, out)
}

// ListMatches handles GET /v1/matches.
func (h *PublicHandler) ListMatches(c echo.Context) error {
	h.Lock()
	defer h.Unlock()
	out := []matchJSON{}
	for _, m := range h.Org.Matches() {
		out = append(out, toMatchJSON(m))
	}
	return c.JSON(http.StatusOK, out)
}

type sectorSummaryJSON struct {
	Name     string `json:"name"`
	Free     int    `json:"free"`
	Reserved int    `json:"reserved"`
	Sold     int    `json:"sold"`
}

type seatJSON struct {
	Row    int    `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

// SeatMap handles GET /v1/matches/seats?home=&away=&kickoff=. Without a
// sector parameter it returns per-sector availability counts; with one
// it also lists that sector's seats. Expired holds are swept first so
// the counts reflect bookable reality.
func (h *PublicHandler) SeatMap(c echo.Context) error {
	var ref matchRef
	if err := c.Bind(&ref); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query"})
	}
	sectorName := c.QueryParam("sector")

	h.Lock()
	m, err := ref.resolve(h.Org)
	if err != nil {
		h.Unlock()
		return writeDomainError(c, err)
	}
	h.Org.Registry().ExpireReservations(time.Now())

	summaries := []sectorSummaryJSON{}
	for _, sec := range m.Sectors() {
		sum := sectorSummaryJSON{Name: sec.Name()}
		for _, seat := range sec.Seats() {
			switch seat.Status() {
			case stadium.StatusFree:
				sum.Free++
			case stadium.StatusReserved:
				sum.Reserved++
			case stadium.StatusSold:
				sum.Sold++
			}
		}
		summaries = append(summaries, sum)
	}

	resp := echo.Map{"match": toMatchJSON(m), "sectors": summaries}
	if sectorName != "" {
		sec, err := m.Sector(sectorName)
		if err != nil {
			h.Unlock()
			return writeDomainError(c, err)
		}
		seats := make([]seatJSON, 0, len(sec.Seats()))
		for _, seat := range sec.Seats() {
			seats = append(seats, seatJSON{
				Row:    seat.Row(),
				Number: seat.Number(),
				Status: seat.Status().String(),
			})
		}
		resp["seats"] = seats
	}
	h.Unlock()
	return c.JSON(http.StatusOK, resp)
}

// Quote handles GET /v1/matches/price?home=&away=&kickoff=[&on=]. It
// returns the venue's base price and the best discounted price for the
// given purchase date (default now), with the applied discount.
func (h *PublicHandler) Quote(c echo.Context) error {
	var ref matchRef
	if err := c.Bind(&ref); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query"})
	}
	on := time.Now()
	if raw := c.QueryParam("on"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "on must be RFC3339"})
		}
		on = parsed
	}

	h.Lock()
	defer h.Unlock()
	m, err := ref.resolve(h.Org)
	if err != nil {
		return writeDomainError(c, err)
	}
	price, best := h.Org.BestPrice(m, on)
	resp := echo.Map{
		"match":      toMatchJSON(m),
		"base_price": m.Venue().PricePerMatch(),
		"price":      price,
	}
	if best != nil {
		dj := toDiscountJSON(best)
		resp["discount"] = dj
	}
	return c.JSON(http.StatusOK, resp)
}
