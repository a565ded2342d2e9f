package repository

import (
	"context"
	"database/sql"
	"time"
)

// TicketRecord mirrors the 'tickets' table: one row per issued ticket,
// keyed by the registry's global ID. Reserved rows are live reservations;
// paid rows are purchases. A reservation that expires or is cancelled is
// deleted; one that is confirmed flips to paid.
type TicketRecord struct {
	ID        int
	Username  string
	Kickoff   time.Time
	Home      string
	Away      string
	Sector    string
	Row       int
	Seat      int
	Reserved  bool
	Paid      bool
	Price     float64
	CreatedAt time.Time
}

type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

// Save inserts a ticket row.
func (r *TicketRepo) Save(ctx context.Context, t TicketRecord) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO tickets
		 (id, username, kickoff, home, away, sector, row_no, seat_no, reserved, paid, price, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.Username, t.Kickoff.UTC(), t.Home, t.Away,
		t.Sector, t.Row, t.Seat, t.Reserved, t.Paid, t.Price, t.CreatedAt.UTC())
	return err
}

// MarkPaid flips a reservation row into a purchase, capturing the price.
func (r *TicketRepo) MarkPaid(ctx context.Context, id int, price float64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET paid=1, price=? WHERE id=?", price, id)
	return err
}

// Delete removes a ticket row (cancelled or expired reservation).
func (r *TicketRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM tickets WHERE id=?", id)
	return err
}

// DeleteByMatch removes every ticket row of a match, used when the match
// is moved to another venue and its booking state is discarded.
func (r *TicketRepo) DeleteByMatch(ctx context.Context, kickoff time.Time, home, away string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM tickets WHERE kickoff=? AND home=? AND away=?", kickoff.UTC(), home, away)
	return err
}

// List returns every stored ticket ordered by ID, so a replay re-issues
// them in their original order.
func (r *TicketRepo) List(ctx context.Context) ([]TicketRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, username, kickoff, home, away, sector, row_no, seat_no, reserved, paid, price, created_at
		 FROM tickets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TicketRecord
	for rows.Next() {
		var t TicketRecord
		if err := rows.Scan(&t.ID, &t.Username, &t.Kickoff, &t.Home, &t.Away,
			&t.Sector, &t.Row, &t.Seat, &t.Reserved, &t.Paid, &t.Price, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
