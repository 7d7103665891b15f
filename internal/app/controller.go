package app

import (
	"fmt"
	"image/color"

	"immigration/internal/core"
	"immigration/internal/logger"
	"immigration/internal/render"
	"immigration/internal/sims/immigration"
	"immigration/internal/simulation"
)

// DefaultDensity is the fill ratio used when reseeding.
const DefaultDensity = 0.2

// paletteSeed keeps species colours stable across settings changes.
const paletteSeed = 1

// Settings is the grid reconfiguration command. Size and wraparound are
// fixed per grid, so applying Settings always builds a new grid.
type Settings struct {
	GridSize     int
	SpeciesCount int
	Wraparound   bool
	FPS          float64
}

// DefaultSettings mirrors the boot configuration of the viewer.
func DefaultSettings() Settings {
	return Settings{GridSize: 50, SpeciesCount: 2, Wraparound: true, FPS: simulation.DefaultFPS}
}

// Stats is what the stats display shows after every step.
type Stats struct {
	Generation int
	Total      int
	Species    map[uint8]int
	Running    bool
	FPS        float64
}

// Options configure a Controller. Zero values pick production defaults.
type Options struct {
	Settings Settings
	Density  float64
	Clock    simulation.Clock
	Source   core.Source
	Logger   *logger.Logger
}

// Controller owns the current grid, the scheduler driving it and the frame
// queue the host pumps. It translates input commands into grid edits and
// fans step notifications out to observers.
type Controller struct {
	grid   *immigration.Grid
	sim    *simulation.Simulation
	frames *simulation.FrameQueue

	settings Settings
	density  float64
	selected immigration.Species
	palette  []color.RGBA

	src       core.Source
	log       *logger.Logger
	observers []func(Stats)
}

// NewController builds the grid and a paused simulation, then seeds the grid.
func NewController(opts Options) *Controller {
	if opts.Settings == (Settings{}) {
		opts.Settings = DefaultSettings()
	}
	if opts.Density <= 0 {
		opts.Density = DefaultDensity
	}
	if opts.Source == nil {
		opts.Source = core.DefaultSource()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	c := &Controller{
		frames:   simulation.NewFrameQueue(),
		settings: opts.Settings,
		density:  opts.Density,
		selected: 1,
		src:      opts.Source,
		log:      opts.Logger,
	}
	c.grid = c.buildGrid(opts.Settings)
	c.sim = simulation.New(c.grid, c.frames, opts.Clock)
	c.sim.SetFPS(opts.Settings.FPS)
	c.sim.SetStepHandler(c.notify)
	c.refreshPalette()
	c.grid.RandomSeed(c.density)
	return c
}

func (c *Controller) buildGrid(s Settings) *immigration.Grid {
	return immigration.NewGrid(s.GridSize, s.SpeciesCount, s.Wraparound, immigration.WithSource(c.src))
}

func (c *Controller) refreshPalette() {
	c.palette = render.Palette(c.grid.SpeciesCount(), core.NewRNG(paletteSeed))
}

// Grid returns the grid currently being simulated.
func (c *Controller) Grid() *immigration.Grid { return c.grid }

// Simulation returns the scheduler.
func (c *Controller) Simulation() *simulation.Simulation { return c.sim }

// Frames returns the queue the host must pump once per display frame.
func (c *Controller) Frames() *simulation.FrameQueue { return c.frames }

// Palette returns the species colours for the current grid.
func (c *Controller) Palette() []color.RGBA { return c.palette }

// Settings returns the settings the current grid was built from, with the
// live fps and species count.
func (c *Controller) Settings() Settings {
	s := c.settings
	s.FPS = c.sim.FPS()
	s.SpeciesCount = c.grid.SpeciesCount()
	return s
}

// Selected returns the species painted by Paint.
func (c *Controller) Selected() immigration.Species { return c.selected }

// Density returns the reseed fill ratio.
func (c *Controller) Density() float64 { return c.density }

// AddObserver registers fn to receive stats after every step and edit.
func (c *Controller) AddObserver(fn func(Stats)) {
	c.observers = append(c.observers, fn)
}

// Stats reports the current generation and population.
func (c *Controller) Stats() Stats {
	return Stats{
		Generation: c.grid.Generation(),
		Total:      c.grid.TotalCells(),
		Species:    c.grid.SpeciesCounts(),
		Running:    c.sim.Running(),
		FPS:        c.sim.FPS(),
	}
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	stats := c.Stats()
	for _, fn := range c.observers {
		fn(stats)
	}
}

// Paint applies a point edit: erase clears the cell, otherwise it takes the
// selected species. The edit is visible from the next step or render.
func (c *Controller) Paint(x, y int, erase bool) {
	value := c.selected
	if erase {
		value = immigration.Empty
	}
	c.grid.SetCell(x, y, value)
	c.notify()
}

// SelectSpecies chooses the species painted next, clamped to the grid's range.
func (c *Controller) SelectSpecies(s int) {
	if s < 1 {
		s = 1
	}
	if n := c.grid.SpeciesCount(); s > n {
		s = n
	}
	c.selected = immigration.Species(s)
}

// ApplySettings pauses, replaces the grid with a freshly built one and
// points the simulation at it. The new grid starts empty.
func (c *Controller) ApplySettings(s Settings) {
	c.sim.Pause()
	c.settings = s
	c.grid = c.buildGrid(s)
	c.sim.UpdateGrid(c.grid)
	c.sim.SetFPS(s.FPS)
	c.selected = 1
	c.refreshPalette()
	c.log.Event("settings", fmt.Sprintf("size=%d species=%d wrap=%v fps=%g",
		c.grid.Size(), c.grid.SpeciesCount(), c.grid.Wraparound(), s.FPS))
	c.notify()
}

// SetFPS changes the step rate.
func (c *Controller) SetFPS(fps float64) {
	c.sim.SetFPS(fps)
	c.settings.FPS = fps
}

// SetSpeciesCount changes the species used by the next reseed without
// rebuilding the grid.
func (c *Controller) SetSpeciesCount(n int) {
	c.grid.SetSpeciesCount(n)
	c.settings.SpeciesCount = c.grid.SpeciesCount()
	c.refreshPalette()
	c.SelectSpecies(int(c.selected))
}

// SetDensity changes the reseed fill ratio. Values outside [0,1] are ignored.
func (c *Controller) SetDensity(d float64) {
	if d < 0 || d > 1 {
		return
	}
	c.density = d
}

// TogglePlay starts a paused simulation or pauses a running one.
func (c *Controller) TogglePlay() {
	if c.sim.Running() {
		c.sim.Pause()
		c.log.Event("pause", fmt.Sprintf("generation=%d", c.grid.Generation()))
		return
	}
	c.sim.Start()
	c.log.Event("start", fmt.Sprintf("generation=%d fps=%g", c.grid.Generation(), c.sim.FPS()))
}

// StepOnce performs a single manual step.
func (c *Controller) StepOnce() { c.sim.Step() }

// Clear empties the grid.
func (c *Controller) Clear() {
	c.grid.Clear()
	c.notify()
}

// Reseed refills the grid at the current density.
func (c *Controller) Reseed() {
	c.grid.RandomSeed(c.density)
	c.notify()
}

// Destroy tears down the scheduler. The controller must not be started again.
func (c *Controller) Destroy() {
	c.sim.Destroy()
}
