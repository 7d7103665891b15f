package core

// Snapshot is the read-only view handed to renderers and stats displays.
// Cells is the live current buffer in row-major order; it must not be
// modified and is only valid until the next transition.
type Snapshot struct {
	Size         int
	SpeciesCount int
	Cells        []uint8
}

// At returns the cell value at (x, y), or 0 when out of range.
func (s Snapshot) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= s.Size || y >= s.Size {
		return 0
	}
	return s.Cells[y*s.Size+x]
}
