package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/izio7/Beckenbauer/internal/repository"
	"github.com/izio7/Beckenbauer/internal/stadium"
)

// AdminHandler exposes management operations: venues, matches and
// discounts. Routes using it are guarded by the MANAGER role.
type AdminHandler struct{ *State }

func NewAdminHandler(s *State) *AdminHandler { return &AdminHandler{State: s} }

type venueJSON struct {
	Name              string  `json:"name"`
	Capacity          int     `json:"capacity"`
	EffectiveCapacity int     `json:"effective_capacity"`
	SeatsPerSector    int     `json:"seats_per_sector"`
	RowsPerSector     int     `json:"rows_per_sector"`
	SeatsPerRow       int     `json:"seats_per_row"`
	PricePerMatch     float64 `json:"price_per_match"`
}

func toVenueJSON(v *stadium.Venue) venueJSON {
	return venueJSON{
		Name:              v.Name(),
		Capacity:          v.Capacity(),
		EffectiveCapacity: v.EffectiveCapacity(),
		SeatsPerSector:    v.SeatsPerSector(),
		RowsPerSector:     v.RowsPerSector(),
		SeatsPerRow:       v.SeatsPerRow(),
		PricePerMatch:     v.PricePerMatch(),
	}
}

// CreateVenue handles POST /v1/admin/venues. Capacity and price bounds are
// enforced by the domain; violations come back as 400.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	var req struct {
		Name     string  `json:"name"`
		Capacity int     `json:"capacity"`
		Price    float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, capacity and price are required"})
	}
	v, err := stadium.NewVenue(req.Name, req.Capacity, req.Price)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.Lock()
	defer h.Unlock()
	if err := h.Org.AddVenue(v); err != nil {
		return writeDomainError(c, err)
	}
	h.persistVenue(v)
	return c.JSON(http.StatusCreated, toVenueJSON(v))
}

// SetVenueCapacity handles PUT /v1/admin/venues/:name/capacity. The layout is
// regenerated from scratch; the response restates the destructive
// contract so clients are not surprised by vanished seat states.
func (h *AdminHandler) SetVenueCapacity(c echo.Context) error {
	var req struct {
		Capacity int `json:"capacity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Lock()
	defer h.Unlock()
	v, err := h.Org.VenueByName(c.Param("name"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if err := v.SetCapacity(req.Capacity); err != nil {
		return writeDomainError(c, err)
	}
	h.persistVenue(v)
	return c.JSON(http.StatusOK, echo.Map{
		"venue":   toVenueJSON(v),
		"warning": "layout regenerated; all template seat states were reset",
	})
}

// SetVenuePrice handles PUT /v1/admin/venues/:name/price.
func (h *AdminHandler) SetVenuePrice(c echo.Context) error {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Lock()
	defer h.Unlock()
	v, err := h.Org.VenueByName(c.Param("name"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if err := v.SetPricePerMatch(req.Price); err != nil {
		return writeDomainError(c, err)
	}
	h.persistVenue(v)
	return c.JSON(http.StatusOK, toVenueJSON(v))
}

func (h *AdminHandler) persistVenue(v *stadium.Venue) {
	rec := repository.VenueRecord{Name: v.Name(), Capacity: v.Capacity(), Price: v.PricePerMatch()}
	h.persist("venue", func(ctx context.Context) error {
		return h.Store.Venues.Save(ctx, rec)
	})
}
