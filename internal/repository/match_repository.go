package repository

import (
	"context"
	"database/sql"
	"time"
)

// MatchRecord mirrors the 'matches' table. The identity is the
// (kickoff, home, away) tuple; the venue is an attribute resolved by
// name on restore.
type MatchRecord struct {
	Kickoff   time.Time
	Home      string
	Away      string
	VenueName string
}

type MatchRepo struct{ DB *sql.DB }

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{DB: db} }

// Save upserts a match by its identity tuple. A venue move updates the
// venue_name attribute of the same row.
func (r *MatchRepo) Save(ctx context.Context, m MatchRecord) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO matches (kickoff, home, away, venue_name) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE venue_name=VALUES(venue_name)`,
		m.Kickoff.UTC(), m.Home, m.Away, m.VenueName)
	return err
}

// List returns every stored match, oldest kickoff first.
func (r *MatchRepo) List(ctx context.Context) ([]MatchRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT kickoff, home, away, venue_name FROM matches ORDER BY kickoff")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MatchRecord
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(&m.Kickoff, &m.Home, &m.Away, &m.VenueName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
