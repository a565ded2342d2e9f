package repository

import (
	"context"
	"database/sql"
	"time"
)

// DiscountRecord mirrors the 'discounts' table. Kind decides which of
// the nullable columns carry meaning: weekday discounts use weekday plus
// the validity range, match discounts the match tuple plus the range,
// venue discounts only the venue name.
type DiscountRecord struct {
	ID        uint64
	Kind      string
	Percent   float64
	Weekday   int
	Start     sql.NullTime
	End       sql.NullTime
	Kickoff   sql.NullTime
	Home      sql.NullString
	Away      sql.NullString
	VenueName sql.NullString
}

// Discount kinds as stored in the 'kind' column.
const (
	KindWeekday = "WEEKDAY"
	KindMatch   = "MATCH"
	KindVenue   = "VENUE"
)

type DiscountRepo struct{ DB *sql.DB }

func NewDiscountRepo(db *sql.DB) *DiscountRepo { return &DiscountRepo{DB: db} }

// Save inserts a discount row.
func (r *DiscountRepo) Save(ctx context.Context, d DiscountRecord) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO discounts (kind, percent, weekday, start_at, end_at, kickoff, home, away, venue_name)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		d.Kind, d.Percent, d.Weekday, nullUTC(d.Start), nullUTC(d.End),
		nullUTC(d.Kickoff), d.Home, d.Away, d.VenueName)
	return err
}

// List returns every stored discount.
func (r *DiscountRepo) List(ctx context.Context) ([]DiscountRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, kind, percent, weekday, start_at, end_at, kickoff, home, away, venue_name
		 FROM discounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DiscountRecord
	for rows.Next() {
		var d DiscountRecord
		if err := rows.Scan(&d.ID, &d.Kind, &d.Percent, &d.Weekday,
			&d.Start, &d.End, &d.Kickoff, &d.Home, &d.Away, &d.VenueName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func nullUTC(t sql.NullTime) interface{} {
	if !t.Valid {
		return nil
	}
	return t.Time.UTC()
}

// NullTime wraps a time in a valid sql.NullTime.
func NullTime(t time.Time) sql.NullTime { return sql.NullTime{Time: t, Valid: true} }

// NullString wraps a string in a valid sql.NullString.
func NullString(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }
