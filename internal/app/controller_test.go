package app

import (
	"flag"
	"slices"
	"testing"
	"time"

	"immigration/internal/core"
	"immigration/internal/sims/immigration"
	"immigration/internal/simulation"
)

func newTestController(t *testing.T) (*Controller, *simulation.ManualClock) {
	t.Helper()
	clock := simulation.NewManualClock(time.Unix(0, 0))
	c := NewController(Options{
		Settings: Settings{GridSize: 20, SpeciesCount: 3, Wraparound: true, FPS: 10},
		Clock:    clock,
		Source:   core.NewRNG(9),
	})
	return c, clock
}

func TestControllerBootSeedsGrid(t *testing.T) {
	c, _ := newTestController(t)
	if c.Grid().Size() != 20 || c.Grid().SpeciesCount() != 3 {
		t.Fatalf("grid = %dx%d species %d", c.Grid().Size(), c.Grid().Size(), c.Grid().SpeciesCount())
	}
	if c.Grid().TotalCells() == 0 {
		t.Fatal("boot did not seed the grid")
	}
	if c.Simulation().Running() {
		t.Fatal("simulation should start paused")
	}
	if len(c.Palette()) != 4 {
		t.Fatalf("palette has %d entries, want 4", len(c.Palette()))
	}
}

func TestPaintUsesSelectedSpecies(t *testing.T) {
	c, _ := newTestController(t)
	c.Clear()
	c.SelectSpecies(3)
	c.Paint(4, 5, false)
	if got := c.Grid().Cell(4, 5); got != 3 {
		t.Fatalf("painted %d, want 3", got)
	}
	c.Paint(4, 5, true)
	if got := c.Grid().Cell(4, 5); got != immigration.Empty {
		t.Fatalf("erase left %d", got)
	}
	c.Paint(-1, 50, false)
	if c.Grid().TotalCells() != 0 {
		t.Fatal("out-of-range paint changed the grid")
	}
}

func TestSelectSpeciesClamps(t *testing.T) {
	c, _ := newTestController(t)
	c.SelectSpecies(9)
	if c.Selected() != 3 {
		t.Fatalf("selected = %d, want 3", c.Selected())
	}
	c.SelectSpecies(0)
	if c.Selected() != 1 {
		t.Fatalf("selected = %d, want 1", c.Selected())
	}
}

func TestApplySettingsRedirectsSimulation(t *testing.T) {
	c, clock := newTestController(t)
	old := c.Grid()
	c.TogglePlay()

	c.ApplySettings(Settings{GridSize: 30, SpeciesCount: 5, Wraparound: false, FPS: 20})

	if c.Grid() == old {
		t.Fatal("settings change reused the old grid")
	}
	if old.Size() != 20 {
		t.Fatal("old grid was resized in place")
	}
	if c.Simulation().Running() {
		t.Fatal("settings change left the simulation running")
	}
	if c.Simulation().Grid() != simulation.Stepper(c.Grid()) {
		t.Fatal("simulation still points at the old grid")
	}
	if got := c.Settings(); got.GridSize != 30 || got.SpeciesCount != 5 || got.Wraparound || got.FPS != 20 {
		t.Fatalf("settings = %+v", got)
	}

	c.Paint(1, 1, false)
	c.Paint(2, 1, false)
	c.Paint(3, 1, false)
	c.TogglePlay()
	clock.Advance(50 * time.Millisecond)
	c.Frames().Pump()
	if c.Grid().Generation() != 1 || old.Generation() != 0 {
		t.Fatalf("new gen=%d old gen=%d", c.Grid().Generation(), old.Generation())
	}
}

func TestObserversSeeEveryStep(t *testing.T) {
	c, clock := newTestController(t)
	var seen []Stats
	c.AddObserver(func(s Stats) { seen = append(seen, s) })

	c.StepOnce()
	c.TogglePlay()
	for i := 0; i < 30; i++ {
		clock.Advance(10 * time.Millisecond)
		c.Frames().Pump()
	}

	if len(seen) != 4 {
		t.Fatalf("observer saw %d notifications, want 4", len(seen))
	}
	last := seen[len(seen)-1]
	if last.Generation != 4 || !last.Running {
		t.Fatalf("last stats = %+v", last)
	}
	sum := 0
	for _, n := range last.Species {
		sum += n
	}
	if sum != last.Total {
		t.Fatalf("species sum %d != total %d", sum, last.Total)
	}
}

func TestSpeciesChangeOnlyAffectsReseed(t *testing.T) {
	c, _ := newTestController(t)
	size := c.Grid().Size()
	grid := c.Grid()

	c.SetSpeciesCount(6)
	if c.Grid() != grid || c.Grid().Size() != size {
		t.Fatal("species change rebuilt the grid")
	}
	c.Reseed()
	seen := map[uint8]bool{}
	for _, v := range c.Grid().Cells() {
		seen[v] = true
	}
	if !seen[6] && !seen[5] && !seen[4] {
		t.Fatal("reseed did not use the new species range")
	}
	if len(c.Palette()) != 7 {
		t.Fatalf("palette has %d entries, want 7", len(c.Palette()))
	}
}

func TestHUDParameterSetters(t *testing.T) {
	c, _ := newTestController(t)

	if !c.SetIntParameter("size", 40) || c.Grid().Size() != 40 {
		t.Fatal("size parameter did not rebuild the grid")
	}
	if c.SetIntParameter("size", 5) {
		t.Fatal("size below minimum accepted")
	}
	if !c.SetBoolParameter("wrap", false) || c.Grid().Wraparound() {
		t.Fatal("wrap parameter not applied")
	}
	if c.SetIntParameter("wrap", 1) || c.SetBoolParameter("size", true) {
		t.Fatal("parameter accepted through the wrong setter")
	}
	if !c.SetFloatParameter("fps", 25) || c.Simulation().FPS() != 25 {
		t.Fatal("fps parameter not applied")
	}
	if c.SetFloatParameter("density", 2) || c.Density() != DefaultDensity {
		t.Fatal("density above 1 accepted")
	}
	if c.SetIntParameter("unknown", 1) || c.SetFloatParameter("unknown", 1) {
		t.Fatal("unknown key accepted")
	}

	snap := c.Parameters()
	p, ok := snap.Lookup("size")
	if !ok || p.Value != "40" {
		t.Fatalf("size parameter = %+v", p)
	}
	if p, ok := snap.Lookup("wrap"); !ok || p.Type != core.ParamTypeBool || p.Value != "false" {
		t.Fatalf("wrap parameter = %+v", p)
	}
	if _, ok := snap.Lookup("species_3"); !ok {
		t.Fatal("per-species population missing")
	}
}

func TestDestroyStopsScheduling(t *testing.T) {
	c, clock := newTestController(t)
	c.TogglePlay()
	c.Destroy()
	c.TogglePlay()
	clock.Advance(time.Second)
	c.Frames().Pump()
	if c.Grid().Generation() != 0 {
		t.Fatal("destroyed controller kept stepping")
	}
}

func TestCellAt(t *testing.T) {
	cases := []struct {
		px, py, scale, size int
		x, y                int
		ok                  bool
	}{
		{px: 0, py: 0, scale: 4, size: 10, x: 0, y: 0, ok: true},
		{px: 39, py: 17, scale: 4, size: 10, x: 9, y: 4, ok: true},
		{px: 40, py: 0, scale: 4, size: 10, ok: false},
		{px: -1, py: 0, scale: 4, size: 10, ok: false},
		{px: 3, py: 3, scale: 0, size: 10, ok: false},
	}
	for _, tc := range cases {
		x, y, ok := CellAt(tc.px, tc.py, tc.scale, tc.size)
		if ok != tc.ok || (ok && (x != tc.x || y != tc.y)) {
			t.Fatalf("CellAt(%d,%d,%d,%d) = %d,%d,%v", tc.px, tc.py, tc.scale, tc.size, x, y, ok)
		}
	}
	if FitScale(800, 50) != 16 || FitScale(100, 400) != 1 || FitScale(100, 0) != 1 {
		t.Fatal("FitScale mismatch")
	}
}

func TestPaintIntent(t *testing.T) {
	cases := []struct {
		left, right, shift bool
		paint, erase       bool
	}{
		{},
		{shift: true},
		{left: true, paint: true},
		{left: true, shift: true, paint: true, erase: true},
		{right: true, paint: true, erase: true},
		{left: true, right: true, paint: true, erase: true},
	}
	for _, tc := range cases {
		paint, erase := PaintIntent(tc.left, tc.right, tc.shift)
		if paint != tc.paint || erase != tc.erase {
			t.Fatalf("PaintIntent(%v,%v,%v) = %v,%v want %v,%v",
				tc.left, tc.right, tc.shift, paint, erase, tc.paint, tc.erase)
		}
	}
}

func TestConfigResolvePreset(t *testing.T) {
	cfg := NewConfig()
	cfg.Preset = "quadlife"
	cfg.Seed = 3
	opts, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.Settings.SpeciesCount != 4 || opts.Source == nil {
		t.Fatalf("opts = %+v", opts)
	}
	if cfg.Seed != 3 {
		t.Fatalf("explicit seed replaced by preset seed: %d", cfg.Seed)
	}

	cfg = NewConfig()
	cfg.Preset = "missing"
	if _, err := cfg.Resolve(); err == nil {
		t.Fatal("unknown preset resolved")
	}
}

func TestConfigResolvePresetSeedIsDeterministic(t *testing.T) {
	resolve := func() Options {
		cfg := NewConfig()
		cfg.Preset = "life"
		opts, err := cfg.Resolve()
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Seed != 1337 {
			t.Fatalf("preset seed not applied: seed = %d", cfg.Seed)
		}
		return opts
	}
	a, b := resolve(), resolve()
	if a.Source == nil || b.Source == nil {
		t.Fatal("preset without -seed fell back to the process-wide generator")
	}
	for i := 0; i < 32; i++ {
		if x, y := a.Source.IntN(1000), b.Source.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}

	ca, cb := NewController(resolve()), NewController(resolve())
	if !slices.Equal(ca.Grid().Cells(), cb.Grid().Cells()) {
		t.Fatal("controllers built from the same preset seeded different grids")
	}
}

func TestConfigResolveNoSeedUsesProcessGenerator(t *testing.T) {
	opts, err := NewConfig().Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.Source != nil {
		t.Fatal("Source set without -seed or -preset")
	}
}

func TestConfigSetOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-preset", "walled", "-set", "density=0.5", "-set", "species=3", "-set", "seed=42"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	opts, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Settings{GridSize: 50, SpeciesCount: 3, Wraparound: false, FPS: cfg.FPS}
	if opts.Settings != want || opts.Density != 0.5 || cfg.Seed != 42 {
		t.Fatalf("opts = %+v density=%g seed=%d", opts.Settings, opts.Density, cfg.Seed)
	}

	if err := fs.Parse([]string{"-set", "density"}); err == nil {
		t.Fatal("override without '=' accepted")
	}

	cfg = NewConfig()
	cfg.Overrides = kvList{"species=0"}
	if _, err := cfg.Resolve(); err == nil {
		t.Fatal("out-of-range override accepted")
	}
}
