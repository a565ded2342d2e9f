package stadium

import (
	"fmt"
	"testing"
)

// TestLayoutGeometry checks the derived geometry for the well-known
// 80000-seat case: 4 sectors of 20000 seats, 141 rows, 142 seats per row.
func TestLayoutGeometry(t *testing.T) {
	v, err := NewVenue("San Siro", 80000, 30.0)
	if err != nil {
		t.Fatalf("NewVenue: %v", err)
	}
	if got := v.SeatsPerSector(); got != 20000 {
		t.Errorf("SeatsPerSector = %d, want 20000", got)
	}
	if got := v.RowsPerSector(); got != 141 {
		t.Errorf("RowsPerSector = %d, want 141", got)
	}
	if got := v.SeatsPerRow(); got != 142 {
		t.Errorf("SeatsPerRow = %d, want 142", got)
	}
	if got := v.EffectiveCapacity(); got != 80000 {
		t.Errorf("EffectiveCapacity = %d, want 80000", got)
	}
	if got := len(v.Sectors()); got != SectorCount {
		t.Fatalf("sectors = %d, want %d", got, SectorCount)
	}
	for _, sec := range v.Sectors() {
		if got := len(sec.Seats()); got != 20000 {
			t.Errorf("sector %s has %d seats, want 20000", sec.Name(), got)
		}
	}
}

// TestLayoutDropsRemainder verifies that capacities not divisible by the
// sector count lose the remainder: effective = floor(C/4) * 4.
func TestLayoutDropsRemainder(t *testing.T) {
	for _, capacity := range []int{10001, 10003, 54321, 199999} {
		v, err := NewVenue("X", capacity, 20.0)
		if err != nil {
			t.Fatalf("NewVenue(%d): %v", capacity, err)
		}
		want := (capacity / SectorCount) * SectorCount
		if got := v.EffectiveCapacity(); got != want {
			t.Errorf("capacity %d: effective = %d, want %d", capacity, got, want)
		}
		if v.EffectiveCapacity() > capacity {
			t.Errorf("capacity %d: effective exceeds desired", capacity)
		}
	}
}

// TestSectorNamingSequence walks a fresh naming counter through the
// alphabet wrap: AA..AZ then BA..
func TestSectorNamingSequence(t *testing.T) {
	namer := newSectorNamer()
	var got []string
	for i := 0; i < 28; i++ {
		got = append(got, namer.next())
	}
	var want []string
	for c := byte('A'); c <= 'Z'; c++ {
		want = append(want, "Settore A"+string(c))
	}
	want = append(want, "Settore BA", "Settore BB")
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVenueSectorNames(t *testing.T) {
	v, err := NewVenue("Olimpico", 70000, 25.0)
	if err != nil {
		t.Fatalf("NewVenue: %v", err)
	}
	for i, sec := range v.Sectors() {
		want := fmt.Sprintf("Settore A%c", 'A'+byte(i))
		if sec.Name() != want {
			t.Errorf("sector %d named %q, want %q", i, sec.Name(), want)
		}
	}
}

// TestRowNumbering checks that the row advances every seatsPerRow seats,
// starting from row 1 at seat 1, and that the row-local position cycles.
func TestRowNumbering(t *testing.T) {
	v, err := NewVenue("Via del Mare", 40000, 15.0)
	if err != nil {
		t.Fatalf("NewVenue: %v", err)
	}
	perRow := v.SeatsPerRow()
	sec := v.Sectors()[0]
	for _, seat := range sec.Seats() {
		wantRow := (seat.Number()-1)/perRow + 1
		if seat.Row() != wantRow {
			t.Fatalf("seat %d in row %d, want %d", seat.Number(), seat.Row(), wantRow)
		}
		if seat.Status() != StatusFree {
			t.Fatalf("seat %d not FREE after generation", seat.Number())
		}
	}
	if last := sec.Seats()[len(sec.Seats())-1]; last.Row() > v.RowsPerSector()+1 {
		t.Errorf("last row %d exceeds rowsPerSector+1 (%d)", last.Row(), v.RowsPerSector()+1)
	}
}
