package stadium

import (
	"fmt"
	"strings"
)

// Capacity and price bounds for a venue. Construction and mutation
// outside these bounds fail with ErrValidation.
const (
	MinCapacity = 10000
	MaxCapacity = 200000
	MinPrice    = 5.0
	MaxPrice    = 500.0
)

// Venue owns the sector/seat layout template for a stadium together with
// its capacity and price policy. The template's seats are always FREE;
// matches book against their own copies, never against the template.
// Venue identity is the name, compared case-insensitively.
type Venue struct {
	name          string
	capacity      int
	pricePerMatch float64
	dims          layoutDims
	sectors       []*Sector
}

// NewVenue builds a venue and generates its layout. It fails atomically
// with ErrValidation when the desired capacity or price is out of bounds.
func NewVenue(name string, capacity int, pricePerMatch float64) (*Venue, error) {
	if err := validateBounds(capacity, pricePerMatch); err != nil {
		return nil, err
	}
	v := &Venue{name: name, capacity: capacity, pricePerMatch: pricePerMatch}
	v.regenerate()
	return v, nil
}

func validateBounds(capacity int, price float64) error {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity %d out of range [%d, %d]", ErrValidation, capacity, MinCapacity, MaxCapacity)
	}
	if price < MinPrice || price > MaxPrice {
		return fmt.Errorf("%w: price %.2f out of range [%.2f, %.2f]", ErrValidation, price, MinPrice, MaxPrice)
	}
	return nil
}

func (v *Venue) regenerate() {
	v.dims = dimsFor(v.capacity)
	v.sectors = generateSectors(v.dims)
}

// Name returns the venue name.
func (v *Venue) Name() string { return v.name }

// Equal reports venue identity: a case-insensitive name match.
func (v *Venue) Equal(other *Venue) bool {
	return other != nil && strings.EqualFold(v.name, other.name)
}

// Capacity returns the desired capacity requested at construction.
func (v *Venue) Capacity() int { return v.capacity }

// EffectiveCapacity returns seatsPerSector * SectorCount. It is at most
// the desired capacity; the remainder of the integer division is dropped.
func (v *Venue) EffectiveCapacity() int { return v.dims.effective }

// SeatsPerSector returns the number of seats in each sector.
func (v *Venue) SeatsPerSector() int { return v.dims.seatsPerSector }

// RowsPerSector returns the number of rows in each sector.
func (v *Venue) RowsPerSector() int { return v.dims.rowsPerSector }

// SeatsPerRow returns the number of seats per row.
func (v *Venue) SeatsPerRow() int { return v.dims.seatsPerRow }

// PricePerMatch returns the base ticket price for matches at this venue.
func (v *Venue) PricePerMatch() float64 { return v.pricePerMatch }

// Sectors returns the venue's template sectors.
func (v *Venue) Sectors() []*Sector { return v.sectors }

// CloneSectors generates a fresh copy of the layout with every seat FREE.
// Each match takes its own copy so seat states never leak between the
// template and other matches.
func (v *Venue) CloneSectors() []*Sector { return generateSectors(v.dims) }

// SetCapacity replaces the desired capacity and regenerates the whole
// layout, resetting every template seat to FREE and the sector-name
// counter to "AA". Destructive: matches already scheduled here keep their
// old copies, but any booking state recorded against the template shape
// (rows, seats per row) no longer lines up. Fails atomically with
// ErrValidation, leaving the previous layout untouched.
func (v *Venue) SetCapacity(capacity int) error {
	if err := validateBounds(capacity, v.pricePerMatch); err != nil {
		return err
	}
	v.capacity = capacity
	v.regenerate()
	return nil
}

// SetPricePerMatch replaces the base price, validating bounds.
func (v *Venue) SetPricePerMatch(price float64) error {
	if err := validateBounds(v.capacity, price); err != nil {
		return err
	}
	v.pricePerMatch = price
	return nil
}
