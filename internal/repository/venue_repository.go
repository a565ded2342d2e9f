package repository

import (
	"context"
	"database/sql"
)

// VenueRecord mirrors the 'venues' table. The name is the primary key;
// capacity and price are enough to regenerate the deterministic layout
// on restore.
type VenueRecord struct {
	Name     string
	Capacity int
	Price    float64
}

type VenueRepo struct{ DB *sql.DB }

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{DB: db} }

// Save upserts a venue by name. Called on creation and on capacity or
// price changes.
func (r *VenueRepo) Save(ctx context.Context, v VenueRecord) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO venues (name, capacity, price) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE capacity=VALUES(capacity), price=VALUES(price)`,
		v.Name, v.Capacity, v.Price)
	return err
}

// List returns every stored venue.
func (r *VenueRepo) List(ctx context.Context) ([]VenueRecord, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT name, capacity, price FROM venues ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueRecord
	for rows.Next() {
		var v VenueRecord
		if err := rows.Scan(&v.Name, &v.Capacity, &v.Price); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
