package immigration

import (
	"fmt"
	"strconv"
)

const (
	// DefaultSize is substituted for a non-positive grid size.
	DefaultSize = 100
	// DefaultSpecies is substituted for an unusable species count.
	DefaultSpecies = 2
	// MaxSpecies is the largest species id a cell can hold.
	MaxSpecies = 255
)

// Config controls how a Grid is built and seeded.
type Config struct {
	Size       int
	Species    int
	Wraparound bool
	Density    float64
	Seed       int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:       50,
		Species:    2,
		Wraparound: true,
		Density:    0.2,
		Seed:       1337,
	}
}

// Apply overrides fields of c from key=value pairs. Recognised keys are
// size, species, wrap, density and seed; keys absent from kv keep their
// current value. Unknown keys and out-of-range values are rejected.
func (c Config) Apply(kv map[string]string) (Config, error) {
	for key, v := range kv {
		switch key {
		case "size":
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				return c, fmt.Errorf("invalid size %q", v)
			}
			c.Size = parsed
		case "species":
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 || parsed > MaxSpecies {
				return c, fmt.Errorf("invalid species %q (want 1..%d)", v, MaxSpecies)
			}
			c.Species = parsed
		case "wrap":
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return c, fmt.Errorf("invalid wrap %q", v)
			}
			c.Wraparound = parsed
		case "density":
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil || parsed < 0 || parsed > 1 {
				return c, fmt.Errorf("invalid density %q", v)
			}
			c.Density = parsed
		case "seed":
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return c, fmt.Errorf("invalid seed %q", v)
			}
			c.Seed = parsed
		default:
			return c, fmt.Errorf("unknown config key %q", key)
		}
	}
	return c, nil
}

// NewFromConfig builds a Grid from c and seeds it at c.Density using a
// deterministic source derived from c.Seed.
func NewFromConfig(c Config) *Grid {
	g := NewGrid(c.Size, c.Species, c.Wraparound, WithSeed(c.Seed))
	if c.Density > 0 {
		g.RandomSeed(c.Density)
	}
	return g
}

func ensurePositive(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func ensureSpecies(v int) int {
	if v <= 0 || v > MaxSpecies {
		return DefaultSpecies
	}
	return v
}
