package app

import (
	"flag"
	"fmt"
	"strings"

	"immigration/internal/core"
	"immigration/internal/sims/immigration"
)

// kvList collects repeatable key=value flags.
type kvList []string

func (l *kvList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	*l = append(*l, value)
	return nil
}

func (l kvList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// Config represents the command-line parameters shared by the binaries.
type Config struct {
	Preset    string
	Size      int
	Species   int
	Wrap      bool
	FPS       float64
	Density   float64
	Seed      int64
	Viewport  int
	TPS       int
	Overrides kvList
}

// NewConfig returns a Config populated with the boot defaults. Seed is left
// at zero so runs without -seed or -preset use the process-wide generator.
func NewConfig() *Config {
	d := immigration.DefaultConfig()
	return &Config{
		Size:     d.Size,
		Species:  d.Species,
		Wrap:     d.Wraparound,
		FPS:      DefaultSettings().FPS,
		Density:  d.Density,
		Viewport: 800,
		TPS:      60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "named preset overriding size/species/wrap/density/seed")
	fs.IntVar(&c.Size, "size", c.Size, "grid edge length in cells")
	fs.IntVar(&c.Species, "species", c.Species, "number of species")
	fs.BoolVar(&c.Wrap, "wrap", c.Wrap, "toroidal wraparound")
	fs.Float64Var(&c.FPS, "fps", c.FPS, "simulation steps per second")
	fs.Float64Var(&c.Density, "density", c.Density, "initial fill ratio")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 uses the preset seed, or the process-wide generator)")
	fs.IntVar(&c.Viewport, "viewport", c.Viewport, "grid viewport edge in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "host frame signals per second")
	fs.Var(&c.Overrides, "set", "grid override in key=value form, applied after -preset (repeatable)")
}

// Resolve applies the preset, if any, then the -set overrides, and returns
// controller options. An explicit -seed wins over the preset's seed.
func (c *Config) Resolve() (Options, error) {
	grid := immigration.Config{Size: c.Size, Species: c.Species, Wraparound: c.Wrap, Density: c.Density, Seed: c.Seed}
	if c.Preset != "" {
		p, ok := immigration.Preset(c.Preset)
		if !ok {
			return Options{}, fmt.Errorf("unknown preset %q (have %v)", c.Preset, immigration.PresetNames())
		}
		if c.Seed != 0 {
			p.Seed = c.Seed
		}
		grid = p
	}
	grid, err := grid.Apply(c.Overrides.Map())
	if err != nil {
		return Options{}, err
	}
	c.Size, c.Species, c.Wrap, c.Density, c.Seed = grid.Size, grid.Species, grid.Wraparound, grid.Density, grid.Seed

	opts := Options{
		Settings: Settings{GridSize: c.Size, SpeciesCount: c.Species, Wraparound: c.Wrap, FPS: c.FPS},
		Density:  c.Density,
	}
	if c.Seed != 0 {
		opts.Source = core.NewRNG(c.Seed)
	}
	return opts, nil
}
