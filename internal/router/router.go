// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/izio7/Beckenbauer/internal/config"
	"github.com/izio7/Beckenbauer/internal/handler"
	"github.com/izio7/Beckenbauer/internal/middleware"
	"github.com/izio7/Beckenbauer/internal/repository"
)

// RegisterRoutes registers routes that need no authentication: the
// health check and the public browse endpoints (venues, the calendar,
// seat availability and price quotes).
func RegisterRoutes(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/healthz", handler.Health)

	e.GET("/v1/venues", p.ListVenues)
	e.GET("/v1/matches", p.ListMatches)
	e.GET("/v1/matches/seats", p.SeatMap)
	e.GET("/v1/matches/price", p.Quote)
}

// RegisterAuth registers the authentication endpoints under /v1/auth
// and the protected API under /v1. Clients book tickets; managers run
// venues, the calendar and discounts.
func RegisterAuth(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	a *handler.AuthHandler, b *handler.BookingHandler, adm *handler.AdminHandler) {

	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	rl := config.LoadRateLimitConfig()

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	auth.Use(middleware.RequireRole(repository.RoleClient, repository.RoleManager))
	auth.Use(middleware.RateLimit(rl, rdb))
	auth.GET("/me", a.Me)

	// Booking workflow, any authenticated user.
	auth.GET("/bookings", b.MyBookings)
	auth.POST("/bookings/reserve", b.Reserve)
	auth.POST("/bookings/purchase", b.Purchase)
	auth.POST("/bookings/reservations/:id/confirm", b.Confirm)
	auth.DELETE("/bookings/reservations/:id", b.Cancel)

	// Administration, managers only.
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(repository.RoleManager))
	admin.POST("/venues", adm.CreateVenue)
	admin.PUT("/venues/:name/capacity", adm.SetVenueCapacity)
	admin.PUT("/venues/:name/price", adm.SetVenuePrice)
	admin.POST("/matches", adm.CreateMatch)
	admin.PUT("/matches/venue", adm.MoveMatch)
	admin.POST("/discounts", adm.CreateDiscount)
	admin.GET("/discounts", adm.ListDiscounts)
	admin.GET("/reservations", adm.ListReservations)
	admin.POST("/reservations/expire", adm.ExpireReservations)
}
