// Package report turns a run into artefacts: a population history, a chart
// of that history and an MJPEG recording of the grid.
package report

// Census is the read side of a grid that History samples.
type Census interface {
	Generation() int
	SpeciesCount() int
	TotalCells() int
	SpeciesCounts() map[uint8]int
}

// Sample is one row of population history. Counts[i] holds species i+1.
type Sample struct {
	Generation int
	Total      int
	Counts     []int
}

// History accumulates population samples, keeping at most limit rows.
type History struct {
	limit   int
	species int
	samples []Sample
}

// NewHistory returns a History that keeps the most recent limit samples.
// A non-positive limit keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record appends the current population of c. Species ids above the
// census's species count only contribute to the total.
func (h *History) Record(c Census) {
	n := c.SpeciesCount()
	if n > h.species {
		h.species = n
	}
	counts := make([]int, n)
	for s, v := range c.SpeciesCounts() {
		if int(s) >= 1 && int(s) <= n {
			counts[s-1] = v
		}
	}
	h.samples = append(h.samples, Sample{Generation: c.Generation(), Total: c.TotalCells(), Counts: counts})
	if h.limit > 0 && len(h.samples) > h.limit {
		h.samples = h.samples[len(h.samples)-h.limit:]
	}
}

// Samples returns the recorded rows, oldest first.
func (h *History) Samples() []Sample { return h.samples }

// Species returns the highest species count seen.
func (h *History) Species() int { return h.species }

// Len returns the number of recorded samples.
func (h *History) Len() int { return len(h.samples) }

// Series returns the population of species s (1-based) across all samples.
func (h *History) Series(s int) []float64 {
	out := make([]float64, len(h.samples))
	for i, row := range h.samples {
		if s >= 1 && s <= len(row.Counts) {
			out[i] = float64(row.Counts[s-1])
		}
	}
	return out
}

// Generations returns the generation of every sample.
func (h *History) Generations() []float64 {
	out := make([]float64, len(h.samples))
	for i, row := range h.samples {
		out[i] = float64(row.Generation)
	}
	return out
}

// Dominant returns the species with the largest population in the latest
// sample, or 0 when the grid is empty or there are no samples.
func (h *History) Dominant() int {
	if len(h.samples) == 0 {
		return 0
	}
	last := h.samples[len(h.samples)-1]
	best, bestCount := 0, 0
	for i, v := range last.Counts {
		if v > bestCount {
			best, bestCount = i+1, v
		}
	}
	return best
}
