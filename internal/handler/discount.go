package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/izio7/Beckenbauer/internal/repository"
	"github.com/izio7/Beckenbauer/internal/stadium"
)

type discountReq struct {
	Kind    string  `json:"kind"` // WEEKDAY | MATCH | VENUE
	Percent float64 `json:"percent"`

	Weekday int    `json:"weekday,omitempty"` // 0 = Sunday
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`

	Match *matchRef `json:"match,omitempty"`
	Venue string    `json:"venue,omitempty"`
}

type discountJSON struct {
	Kind    string  `json:"kind"`
	Percent float64 `json:"percent"`

	Weekday *int       `json:"weekday,omitempty"`
	Start   string     `json:"start,omitempty"`
	End     string     `json:"end,omitempty"`
	Match   *matchJSON `json:"match,omitempty"`
	Venue   string     `json:"venue,omitempty"`
}

func toDiscountJSON(d *stadium.Discount) discountJSON {
	out := discountJSON{Percent: d.Percent}
	switch d.Kind {
	case stadium.DiscountByWeekday:
		out.Kind = repository.KindWeekday
		wd := int(d.Weekday)
		out.Weekday = &wd
		out.Start = d.Start.UTC().Format(time.RFC3339)
		out.End = d.End.UTC().Format(time.RFC3339)
	case stadium.DiscountByMatch:
		out.Kind = repository.KindMatch
		mj := toMatchJSON(d.Match)
		out.Match = &mj
		out.Start = d.Start.UTC().Format(time.RFC3339)
		out.End = d.End.UTC().Format(time.RFC3339)
	case stadium.DiscountByVenue:
		out.Kind = repository.KindVenue
		out.Venue = d.Venue.Name()
	}
	return out
}

// CreateDiscount handles POST /v1/admin/discounts. The kind decides
// which fields matter: WEEKDAY needs weekday plus a validity range,
// MATCH a match tuple plus a range, VENUE only the venue name.
func (h *AdminHandler) CreateDiscount(c echo.Context) error {
	var req discountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Percent < 0 || req.Percent > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "percent must be in [0, 100]"})
	}

	d := &stadium.Discount{Percent: req.Percent}
	rec := repository.DiscountRecord{Percent: req.Percent}

	h.Lock()
	switch strings.ToUpper(req.Kind) {
	case repository.KindWeekday:
		if req.Weekday < 0 || req.Weekday > 6 {
			h.Unlock()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "weekday must be in [0, 6]"})
		}
		start, end, err := parseRange(req.Start, req.End)
		if err != nil {
			h.Unlock()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		d.Kind = stadium.DiscountByWeekday
		d.Weekday = time.Weekday(req.Weekday)
		d.Start, d.End = start, end
		rec.Kind = repository.KindWeekday
		rec.Weekday = req.Weekday
		rec.Start = repository.NullTime(start)
		rec.End = repository.NullTime(end)
	case repository.KindMatch:
		if req.Match == nil {
			h.Unlock()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "match is required"})
		}
		m, err := req.Match.resolve(h.Org)
		if err != nil {
			h.Unlock()
			return writeDomainError(c, err)
		}
		start, end, err := parseRange(req.Start, req.End)
		if err != nil {
			h.Unlock()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		d.Kind = stadium.DiscountByMatch
		d.Match = m
		d.Start, d.End = start, end
		rec.Kind = repository.KindMatch
		rec.Kickoff = repository.NullTime(m.Kickoff())
		rec.Home = repository.NullString(m.Home().Name)
		rec.Away = repository.NullString(m.Away().Name)
		rec.Start = repository.NullTime(start)
		rec.End = repository.NullTime(end)
	case repository.KindVenue:
		v, err := h.Org.VenueByName(req.Venue)
		if err != nil {
			h.Unlock()
			return writeDomainError(c, err)
		}
		d.Kind = stadium.DiscountByVenue
		d.Venue = v
		rec.Kind = repository.KindVenue
		rec.VenueName = repository.NullString(v.Name())
	default:
		h.Unlock()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be WEEKDAY, MATCH or VENUE"})
	}
	h.Org.AddDiscount(d)
	h.Unlock()

	h.persist("discount", func(ctx context.Context) error {
		return h.Store.Discounts.Save(ctx, rec)
	})
	return c.JSON(http.StatusCreated, toDiscountJSON(d))
}

// ListDiscounts handles GET /v1/admin/discounts.
func (h *AdminHandler) ListDiscounts(c echo.Context) error {
	h.Lock()
	defer h.Unlock()
	out := []discountJSON{}
	for _, d := range h.Org.Discounts() {
		out = append(out, toDiscountJSON(d))
	}
	return c.JSON(http.StatusOK, out)
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidRange
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil || e.Before(s) {
		return time.Time{}, time.Time{}, errInvalidRange
	}
	return s, e, nil
}

var errInvalidRange = errors.New("start and end must be RFC3339 with end >= start")
