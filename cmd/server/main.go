package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/izio7/Beckenbauer/internal/config"
	"github.com/izio7/Beckenbauer/internal/database"
	"github.com/izio7/Beckenbauer/internal/handler"
	"github.com/izio7/Beckenbauer/internal/queue"
	"github.com/izio7/Beckenbauer/internal/repository"
	"github.com/izio7/Beckenbauer/internal/router"
	"github.com/izio7/Beckenbauer/internal/stadium"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on current environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	org := stadium.NewOrganization(cfg.OrgName)
	org.Registry().Subscribe(stadium.SeatObserverFunc(func(m *stadium.Match, s *stadium.Seat, from, to stadium.SeatStatus) {
		log.Printf("seat %s/%d/%d %s vs %s: %s -> %s",
			s.Sector().Name(), s.Row(), s.Number(),
			m.Home().Name, m.Away().Name, from, to)
	}))

	store := repository.NewStore(db)
	if err := store.Restore(ctx, org); err != nil {
		log.Fatalf("restore: %v", err)
	}

	state := handler.NewState(cfg, org, store)
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, handler.NewPublicHandler(state))
	router.RegisterAuth(e, cfg, rdb,
		handler.NewAuthHandler(cfg, store.Users),
		handler.NewBookingHandler(state),
		handler.NewAdminHandler(state))

	// Ticket lifecycle events land on RabbitMQ; the consumer appends
	// them to logs/tickets.log and reconnects on broker failures.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("%s listening on %s (env=%s)", cfg.OrgName, addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
