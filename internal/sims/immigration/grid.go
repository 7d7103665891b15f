package immigration

import (
	"immigration/internal/core"
)

// Species identifies the population occupying a cell. Zero is empty.
type Species = uint8

// Empty marks an unoccupied cell.
const Empty Species = 0

// Grid implements the Game of Immigration: Conway survival and birth rules
// where a newborn cell takes the majority species of its three parents.
//
// Cells live in two alternating buffers. Step writes the whole next
// generation into the back buffer before swapping, so readers only ever see
// a complete generation.
type Grid struct {
	size       int
	species    int
	wraparound bool

	bufs [2]*core.ByteGrid
	cur  int

	generation int
	rng        core.Source
}

// Option customises a Grid at construction.
type Option func(*Grid)

// WithSource injects the randomness used for tie-breaks and reseeding.
func WithSource(src core.Source) Option {
	return func(g *Grid) {
		if src != nil {
			g.rng = src
		}
	}
}

// WithSeed is shorthand for WithSource(core.NewRNG(seed)).
func WithSeed(seed int64) Option {
	return WithSource(core.NewRNG(seed))
}

// NewGrid returns an empty size×size grid. A non-positive size falls back to
// DefaultSize and a species count outside [1, MaxSpecies] to DefaultSpecies.
func NewGrid(size, species int, wraparound bool, opts ...Option) *Grid {
	size = ensurePositive(size, DefaultSize)
	g := &Grid{
		size:       size,
		species:    ensureSpecies(species),
		wraparound: wraparound,
		bufs:       [2]*core.ByteGrid{core.NewByteGrid(size, size), core.NewByteGrid(size, size)},
		rng:        core.DefaultSource(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size returns the edge length of the grid.
func (g *Grid) Size() int { return g.size }

// SpeciesCount returns the number of species used when reseeding.
func (g *Grid) SpeciesCount() int { return g.species }

// SetSpeciesCount changes the species count without touching existing cells.
// Cells holding ids above the new count are left as they are.
func (g *Grid) SetSpeciesCount(n int) { g.species = ensureSpecies(n) }

// Wraparound reports whether opposite edges are adjacent.
func (g *Grid) Wraparound() bool { return g.wraparound }

// Generation returns the number of transitions since creation or the last Clear.
func (g *Grid) Generation() int { return g.generation }

// Cells exposes the current generation in row-major order.
func (g *Grid) Cells() []uint8 { return g.bufs[g.cur].Cells() }

// Snapshot returns the render-read view of the current generation.
func (g *Grid) Snapshot() core.Snapshot {
	return core.Snapshot{Size: g.size, SpeciesCount: g.species, Cells: g.Cells()}
}

// Cell returns the species at (x, y). On a toroidal grid coordinates wrap;
// otherwise out-of-range coordinates read as Empty.
func (g *Grid) Cell(x, y int) Species {
	return g.bufs[g.cur].At(x, y, g.wraparound)
}

// SetCell writes s at (x, y). Coordinates outside the grid are ignored and s
// is not range checked.
func (g *Grid) SetCell(x, y int, s Species) {
	g.bufs[g.cur].Set(x, y, s)
}

// Neighbors returns the occupied Moore neighbours of (x, y), scanning rows
// top to bottom and columns left to right.
func (g *Grid) Neighbors(x, y int) []Species {
	var buf [8]Species
	n := g.collectNeighbors(g.bufs[g.cur], x, y, &buf)
	out := make([]Species, n)
	copy(out, buf[:n])
	return out
}

func (g *Grid) collectNeighbors(src *core.ByteGrid, x, y int, buf *[8]Species) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if s := src.At(x+dx, y+dy, g.wraparound); s != Empty {
				buf[n] = s
				n++
			}
		}
	}
	return n
}

// Step advances the grid by one generation.
func (g *Grid) Step() {
	src := g.bufs[g.cur]
	dst := g.bufs[1-g.cur]
	next := dst.Cells()
	var buf [8]Species
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			idx := src.Index(x, y)
			cell := src.Cells()[idx]
			live := g.collectNeighbors(src, x, y, &buf)
			switch {
			case cell != Empty && (live == 2 || live == 3):
				next[idx] = cell
			case cell == Empty && live == 3:
				next[idx] = g.majority(buf[:live])
			default:
				next[idx] = Empty
			}
		}
	}
	g.cur = 1 - g.cur
	g.generation++
}

// majority returns the most frequent species in neighbors, choosing uniformly
// among ties. Birth only happens with three neighbours, so the empty case is
// never reached from Step; it answers species 1 as a guard.
func (g *Grid) majority(neighbors []Species) Species {
	if len(neighbors) == 0 {
		return 1
	}
	var (
		candidates [8]Species
		counts     [8]int
		distinct   int
	)
	for _, s := range neighbors {
		found := false
		for i := 0; i < distinct; i++ {
			if candidates[i] == s {
				counts[i]++
				found = true
				break
			}
		}
		if !found {
			candidates[distinct] = s
			counts[distinct] = 1
			distinct++
		}
	}
	var (
		leaders [8]Species
		tied    int
		best    int
	)
	for i := 0; i < distinct; i++ {
		switch {
		case counts[i] > best:
			best = counts[i]
			leaders[0] = candidates[i]
			tied = 1
		case counts[i] == best:
			leaders[tied] = candidates[i]
			tied++
		}
	}
	return leaders[g.rng.IntN(tied)]
}

// Clear empties every cell and resets the generation counter.
func (g *Grid) Clear() {
	g.bufs[g.cur].Clear()
	g.generation = 0
}

// RandomSeed clears the grid, then occupies each cell with probability
// density by a species drawn uniformly from [1, SpeciesCount].
func (g *Grid) RandomSeed(density float64) {
	g.Clear()
	cells := g.bufs[g.cur].Cells()
	for i := range cells {
		if g.rng.Float64() < density {
			cells[i] = Species(1 + g.rng.IntN(g.species))
		}
	}
}

// TotalCells counts the occupied cells.
func (g *Grid) TotalCells() int {
	total := 0
	for _, c := range g.Cells() {
		if c != Empty {
			total++
		}
	}
	return total
}

// SpeciesCounts tallies occupied cells per species. Every species in
// [1, SpeciesCount] has an entry; stale ids above the count are included too.
func (g *Grid) SpeciesCounts() map[Species]int {
	counts := make(map[Species]int, g.species)
	for s := 1; s <= g.species; s++ {
		counts[Species(s)] = 0
	}
	for _, c := range g.Cells() {
		if c != Empty {
			counts[c]++
		}
	}
	return counts
}
