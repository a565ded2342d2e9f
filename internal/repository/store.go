package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/izio7/Beckenbauer/internal/stadium"
)

// Store bundles the repositories and rebuilds the in-memory organization
// from them at startup. The in-memory model stays the source of truth
// while the process runs; the store records changes so a restart comes
// back to the same state.
type Store struct {
	Users     *UserRepo
	Venues    *VenueRepo
	Matches   *MatchRepo
	Tickets   *TicketRepo
	Discounts *DiscountRepo
}

// NewStore builds a Store over one database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		Users:     NewUserRepo(db),
		Venues:    NewVenueRepo(db),
		Matches:   NewMatchRepo(db),
		Tickets:   NewTicketRepo(db),
		Discounts: NewDiscountRepo(db),
	}
}

// Restore loads venues, matches, discounts and tickets into the given
// organization. Venues come first so matches can resolve them by name;
// matches clone fresh layouts; the ticket replay then re-establishes
// seat states and pushes the ID sequence past the highest stored ID.
// Rows that no longer resolve (a venue renamed by hand, a seat outside a
// shrunken layout) are logged and skipped rather than aborting startup.
func (s *Store) Restore(ctx context.Context, org *stadium.Organization) error {
	venues, err := s.Venues.List(ctx)
	if err != nil {
		return fmt.Errorf("restore venues: %w", err)
	}
	for _, rec := range venues {
		v, err := stadium.NewVenue(rec.Name, rec.Capacity, rec.Price)
		if err != nil {
			log.Printf("restore: skipping venue %q: %v", rec.Name, err)
			continue
		}
		if err := org.AddVenue(v); err != nil {
			log.Printf("restore: skipping venue %q: %v", rec.Name, err)
		}
	}

	matches, err := s.Matches.List(ctx)
	if err != nil {
		return fmt.Errorf("restore matches: %w", err)
	}
	for _, rec := range matches {
		v, err := org.VenueByName(rec.VenueName)
		if err != nil {
			log.Printf("restore: match %s-%s references unknown venue %q", rec.Home, rec.Away, rec.VenueName)
			continue
		}
		m := stadium.NewMatch(stadium.Team{Name: rec.Home}, stadium.Team{Name: rec.Away}, v, rec.Kickoff)
		if err := org.AddMatch(m); err != nil {
			log.Printf("restore: skipping match %s-%s: %v", rec.Home, rec.Away, err)
		}
	}

	discounts, err := s.Discounts.List(ctx)
	if err != nil {
		return fmt.Errorf("restore discounts: %w", err)
	}
	for _, rec := range discounts {
		d, err := s.toDiscount(org, rec)
		if err != nil {
			log.Printf("restore: skipping discount %d: %v", rec.ID, err)
			continue
		}
		org.AddDiscount(d)
	}

	tickets, err := s.Tickets.List(ctx)
	if err != nil {
		return fmt.Errorf("restore tickets: %w", err)
	}
	for _, rec := range tickets {
		m, err := org.MatchBy(rec.Kickoff, rec.Home, rec.Away)
		if err != nil {
			log.Printf("restore: ticket %d references unknown match %s-%s", rec.ID, rec.Home, rec.Away)
			continue
		}
		t := &stadium.Ticket{
			ID:     rec.ID,
			Client: stadium.Client{Username: rec.Username},
			Match:  m,
			Sector: rec.Sector,
			Row:    rec.Row,
			Seat:   rec.Seat,
		}
		if rec.Paid {
			err = org.Registry().RestorePurchase(t, rec.Price, rec.CreatedAt)
		} else {
			err = org.Registry().RestoreReservation(t, rec.CreatedAt)
		}
		if err != nil {
			log.Printf("restore: ticket %d does not fit the current layout: %v", rec.ID, err)
		}
	}
	return nil
}

func (s *Store) toDiscount(org *stadium.Organization, rec DiscountRecord) (*stadium.Discount, error) {
	d := &stadium.Discount{Percent: rec.Percent}
	if rec.Start.Valid {
		d.Start = rec.Start.Time
	}
	if rec.End.Valid {
		d.End = rec.End.Time
	}
	switch rec.Kind {
	case KindWeekday:
		d.Kind = stadium.DiscountByWeekday
		d.Weekday = time.Weekday(rec.Weekday)
	case KindMatch:
		d.Kind = stadium.DiscountByMatch
		if !rec.Kickoff.Valid || !rec.Home.Valid || !rec.Away.Valid {
			return nil, fmt.Errorf("match discount missing its match tuple")
		}
		m, err := org.MatchBy(rec.Kickoff.Time, rec.Home.String, rec.Away.String)
		if err != nil {
			return nil, fmt.Errorf("unknown match %s-%s", rec.Home.String, rec.Away.String)
		}
		d.Match = m
	case KindVenue:
		d.Kind = stadium.DiscountByVenue
		if !rec.VenueName.Valid {
			return nil, fmt.Errorf("venue discount missing its venue name")
		}
		v, err := org.VenueByName(rec.VenueName.String)
		if err != nil {
			return nil, fmt.Errorf("unknown venue %q", rec.VenueName.String)
		}
		d.Venue = v
	default:
		return nil, fmt.Errorf("unknown discount kind %q", rec.Kind)
	}
	return d, nil
}
