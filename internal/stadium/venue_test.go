package stadium

import (
	"errors"
	"testing"
)

func TestNewVenueValidatesBounds(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		price    float64
	}{
		{"capacity below minimum", MinCapacity - 1, 30.0},
		{"capacity above maximum", MaxCapacity + 1, 30.0},
		{"price below minimum", 50000, MinPrice - 0.01},
		{"price above maximum", 50000, MaxPrice + 0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := NewVenue("Bad", tc.capacity, tc.price)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if v != nil {
				t.Fatal("venue returned despite validation failure")
			}
		})
	}
}

func TestVenueEqualIgnoresCase(t *testing.T) {
	a, _ := NewVenue("San Siro", 80000, 30.0)
	b, _ := NewVenue("SAN SIRO", 60000, 10.0)
	if !a.Equal(b) {
		t.Error("venues with same name in different case should be equal")
	}
	c, _ := NewVenue("Meazza", 80000, 30.0)
	if a.Equal(c) {
		t.Error("venues with different names should not be equal")
	}
}

// TestSetCapacityRegenerates checks that a capacity change rebuilds the
// layout from scratch: new geometry, naming counter back to "AA", every
// seat FREE again.
func TestSetCapacityRegenerates(t *testing.T) {
	v, err := NewVenue("Artemio Franchi", 40000, 20.0)
	if err != nil {
		t.Fatalf("NewVenue: %v", err)
	}
	if err := v.SetCapacity(80000); err != nil {
		t.Fatalf("SetCapacity: %v", err)
	}
	if got := v.SeatsPerSector(); got != 20000 {
		t.Errorf("SeatsPerSector after regen = %d, want 20000", got)
	}
	if got := v.Sectors()[0].Name(); got != "Settore AA" {
		t.Errorf("first sector after regen = %q, want \"Settore AA\"", got)
	}
	for _, seat := range v.Sectors()[0].Seats()[:10] {
		if seat.Status() != StatusFree {
			t.Fatal("seat not FREE after regeneration")
		}
	}
}

// TestSetCapacityAtomic checks that a rejected capacity leaves the
// previous layout untouched.
func TestSetCapacityAtomic(t *testing.T) {
	v, _ := NewVenue("Dall'Ara", 40000, 20.0)
	before := v.Sectors()
	if err := v.SetCapacity(MaxCapacity + 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if v.Capacity() != 40000 {
		t.Errorf("capacity mutated to %d on failed call", v.Capacity())
	}
	if before[0] != v.Sectors()[0] {
		t.Error("layout replaced on failed call")
	}
}

func TestSetPricePerMatch(t *testing.T) {
	v, _ := NewVenue("Marassi", 40000, 20.0)
	if err := v.SetPricePerMatch(MaxPrice + 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if v.PricePerMatch() != 20.0 {
		t.Errorf("price mutated to %v on failed call", v.PricePerMatch())
	}
	if err := v.SetPricePerMatch(45.0); err != nil {
		t.Fatalf("SetPricePerMatch: %v", err)
	}
	if v.PricePerMatch() != 45.0 {
		t.Errorf("price = %v, want 45.0", v.PricePerMatch())
	}
}
