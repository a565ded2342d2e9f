package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/izio7/Beckenbauer/internal/queue"
	"github.com/izio7/Beckenbauer/internal/repository"
	"github.com/izio7/Beckenbauer/internal/stadium"
)

// BookingHandler exposes the reservation and purchase workflow to
// authenticated clients.
type BookingHandler struct{ *State }

func NewBookingHandler(s *State) *BookingHandler { return &BookingHandler{State: s} }

// Event actions re-exported so handler code reads without the package
// hop.
const (
	actionReserved  = queue.ActionReserved
	actionPurchased = queue.ActionPurchased
	actionConfirmed = queue.ActionConfirmed
	actionCancelled = queue.ActionCancelled
	actionExpired   = queue.ActionExpired
)

type bookingReq struct {
	matchRef
	Sector string `json:"sector"`
	Row    int    `json:"row"`
	Seat   int    `json:"seat"`
}

// Reserve handles POST /v1/bookings/reserve. Expired reservations are
// swept first so a stale hold never blocks a live request; the target
// seat then moves FREE -> RESERVED. Conflicts (a live reservation by the
// same client for this match, or an occupied seat) come back as 409.
func (h *BookingHandler) Reserve(c echo.Context) error {
	client, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Lock()
	m, err := req.resolve(h.Org)
	if err != nil {
		h.Unlock()
		return writeDomainError(c, err)
	}
	swept := h.Org.Registry().ExpireReservations(time.Now())
	res, err := h.Org.Registry().Reserve(client, m, req.Sector, req.Row, req.Seat)
	h.Unlock()

	h.afterSweep(swept)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.persistTicket(res.Ticket, res.CreatedAt, 0)
	publishTicket(res.Ticket, actionReserved, 0)
	return c.JSON(http.StatusCreated, toTicketJSON(res.Ticket, res.Ticket.Price()))
}

// Purchase handles POST /v1/bookings/purchase: a walk-up sale, seat
// FREE -> SOLD. A live reservation by the same client for this match
// blocks it with 409; confirm or cancel the reservation instead.
func (h *BookingHandler) Purchase(c echo.Context) error {
	client, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Lock()
	m, err := req.resolve(h.Org)
	if err != nil {
		h.Unlock()
		return writeDomainError(c, err)
	}
	swept := h.Org.Registry().ExpireReservations(time.Now())
	p, err := h.Org.Registry().Purchase(client, m, req.Sector, req.Row, req.Seat)
	h.Unlock()

	h.afterSweep(swept)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.persistTicket(p.Ticket, p.CreatedAt, p.Price)
	publishTicket(p.Ticket, actionPurchased, p.Price)
	return c.JSON(http.StatusCreated, toTicketJSON(p.Ticket, p.Price))
}

// Confirm handles POST /v1/bookings/reservations/:id/confirm: converts
// the client's reservation into a purchase, seat RESERVED -> SOLD.
func (h *BookingHandler) Confirm(c echo.Context) error {
	client, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	h.Lock()
	res, err := h.Org.Registry().FindReservation(id)
	if err == nil && !res.Ticket.Client.Equal(client) {
		h.Unlock()
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	}
	var p *stadium.Purchase
	if err == nil {
		p, err = h.Org.Registry().Confirm(res)
	}
	h.Unlock()
	if err != nil {
		return writeDomainError(c, err)
	}
	h.persist("ticket paid", func(ctx context.Context) error {
		return h.Store.Tickets.MarkPaid(ctx, p.Ticket.ID, p.Price)
	})
	publishTicket(p.Ticket, actionConfirmed, p.Price)
	return c.JSON(http.StatusOK, toTicketJSON(p.Ticket, p.Price))
}

// Cancel handles DELETE /v1/bookings/reservations/:id: releases the
// held seat immediately, independent of the 12-hour rule.
func (h *BookingHandler) Cancel(c echo.Context) error {
	client, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	h.Lock()
	res, err := h.Org.Registry().FindReservation(id)
	if err == nil && !res.Ticket.Client.Equal(client) {
		h.Unlock()
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	}
	if err == nil {
		err = h.Org.Registry().Cancel(res)
	}
	h.Unlock()
	if err != nil {
		return writeDomainError(c, err)
	}
	h.persist("ticket delete", func(ctx context.Context) error {
		return h.Store.Tickets.Delete(ctx, res.Ticket.ID)
	})
	publishTicket(res.Ticket, actionCancelled, 0)
	return c.NoContent(http.StatusNoContent)
}

// MyBookings handles GET /v1/bookings: the client's live reservations
// and purchases.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	client, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	h.Lock()
	defer h.Unlock()
	reservations := []ticketJSON{}
	for _, res := range h.Org.Registry().Reservations(stadium.ByClient(client)) {
		reservations = append(reservations, toTicketJSON(res.Ticket, res.Ticket.Price()))
	}
	purchases := []ticketJSON{}
	for _, p := range h.Org.Registry().Purchases(&client) {
		purchases = append(purchases, toTicketJSON(p.Ticket, p.Price))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservations": reservations,
		"purchases":    purchases,
	})
}

// afterSweep persists and publishes the fallout of an inline expiry
// sweep, outside the state lock.
func (h *BookingHandler) afterSweep(swept []*stadium.Reservation) {
	for _, res := range swept {
		id := res.Ticket.ID
		h.persist("ticket delete", func(ctx context.Context) error {
			return h.Store.Tickets.Delete(ctx, id)
		})
		publishTicket(res.Ticket, actionExpired, 0)
	}
}

func (h *BookingHandler) persistTicket(t *stadium.Ticket, createdAt time.Time, price float64) {
	rec := repository.TicketRecord{
		ID:        t.ID,
		Username:  t.Client.Username,
		Kickoff:   t.Match.Kickoff(),
		Home:      t.Match.Home().Name,
		Away:      t.Match.Away().Name,
		Sector:    t.Sector,
		Row:       t.Row,
		Seat:      t.Seat,
		Reserved:  t.Reserved,
		Paid:      t.Paid,
		Price:     price,
		CreatedAt: createdAt,
	}
	h.persist("ticket", func(ctx context.Context) error {
		return h.Store.Tickets.Save(ctx, rec)
	})
}

// publishTicket sends the ticket event to the broker, best-effort.
func publishTicket(t *stadium.Ticket, action string, price float64) {
	ev := queue.TicketEvent{
		TicketID: t.ID,
		Username: t.Client.Username,
		Home:     t.Match.Home().Name,
		Away:     t.Match.Away().Name,
		Kickoff:  t.Match.Kickoff().UTC().Format(time.RFC3339),
		Venue:    t.Match.Venue().Name(),
		Sector:   t.Sector,
		Row:      t.Row,
		Seat:     t.Seat,
		Action:   action,
		Price:    price,
		At:       time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = queue.PublishTicketEvent(ctx, ev)
}
