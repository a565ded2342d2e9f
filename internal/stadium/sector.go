package stadium

import "math"

// SectorCount is the fixed number of sectors every layout is divided into.
const SectorCount = 4

// Sector is a contiguous named block of seats within a venue or match
// layout. It belongs to exactly one layout: either a venue's template or
// one match's working copy.
type Sector struct {
	name  string
	seats []*Seat
}

// Name returns the generated sector name, e.g. "Settore AA".
func (s *Sector) Name() string { return s.name }

// Seats returns the ordered seats of the sector.
func (s *Sector) Seats() []*Seat { return s.seats }

// Seat returns the seat with the given row and seat number, or nil when
// no such seat exists in this sector.
func (s *Sector) Seat(row, number int) *Seat {
	for _, seat := range s.seats {
		if seat.row == row && seat.number == number {
			return seat
		}
	}
	return nil
}

// sectorNamer produces the deterministic sequence of two-letter sector
// names: AA, AB, .. AZ, BA, BB, .. Each generator invocation owns its own
// counter, so regenerating a layout always restarts from "AA".
type sectorNamer struct {
	first, second byte
}

func newSectorNamer() *sectorNamer { return &sectorNamer{first: 'A', second: 'A'} }

func (n *sectorNamer) next() string {
	name := "Settore "
	if n.second < 'Z' {
		name += string(n.first) + string(n.second)
		n.second++
	} else {
		name += string(n.first) + string(n.second)
		n.first++
		n.second = 'A'
	}
	return name
}

// layoutDims holds the derived geometry of a layout for a desired
// capacity. Leftover seats below seatsPerSector*SectorCount are dropped,
// so the effective capacity may be smaller than the desired one.
type layoutDims struct {
	seatsPerSector int
	rowsPerSector  int
	seatsPerRow    int
	effective      int
}

func dimsFor(capacity int) layoutDims {
	sps := capacity / SectorCount
	rows := int(math.Sqrt(float64(sps)))
	return layoutDims{
		seatsPerSector: sps,
		rowsPerSector:  rows,
		seatsPerRow:    int(math.Ceil(float64(sps) / float64(rows))),
		effective:      sps * SectorCount,
	}
}

// generateSectors builds SectorCount sectors for the given geometry.
// Seats are numbered 1..seatsPerSector; the row number starts at 1 and
// advances every time seatNumber % seatsPerRow == 1. All seats start FREE.
func generateSectors(d layoutDims) []*Sector {
	namer := newSectorNamer()
	sectors := make([]*Sector, 0, SectorCount)
	for i := 0; i < SectorCount; i++ {
		sec := &Sector{name: namer.next(), seats: make([]*Seat, 0, d.seatsPerSector)}
		row := 0
		for number := 1; number <= d.seatsPerSector; number++ {
			if number%d.seatsPerRow == 1 {
				row++
			}
			sec.seats = append(sec.seats, &Seat{sector: sec, row: row, number: number})
		}
		sectors = append(sectors, sec)
	}
	return sectors
}
