package simulation

import (
	"math"
	"testing"
	"time"

	"immigration/internal/core"
	"immigration/internal/sims/immigration"
)

type countingStepper struct{ steps int }

func (c *countingStepper) Step() { c.steps++ }

func newHarness(fps float64) (*Simulation, *countingStepper, *FrameQueue, *ManualClock) {
	grid := &countingStepper{}
	frames := NewFrameQueue()
	clock := NewManualClock(time.Unix(1000, 0))
	sim := New(grid, frames, clock)
	sim.SetFPS(fps)
	return sim, grid, frames, clock
}

func TestStartsPaused(t *testing.T) {
	sim, grid, frames, clock := newHarness(60)
	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		frames.Pump()
	}
	if sim.Running() || grid.steps != 0 || frames.Pending() != 0 {
		t.Fatalf("new simulation ran: running=%v steps=%d", sim.Running(), grid.steps)
	}
}

func TestRateLimitedAtFiveFPS(t *testing.T) {
	sim, grid, frames, clock := newHarness(5)
	start := clock.Now()
	sim.Start()

	var stepTimes []time.Time
	sim.SetStepHandler(func() { stepTimes = append(stepTimes, clock.Now()) })

	for clock.Now().Sub(start) < 10*time.Second {
		clock.Advance(10 * time.Millisecond)
		frames.Pump()
	}

	if grid.steps != 50 {
		t.Fatalf("steps over 10s = %d, want 50", grid.steps)
	}
	for i := 1; i < len(stepTimes); i++ {
		if gap := stepTimes[i].Sub(stepTimes[i-1]); gap < 200*time.Millisecond {
			t.Fatalf("steps %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestResidualCarryUnderIrregularFrames(t *testing.T) {
	sim, grid, frames, clock := newHarness(5)
	rng := core.NewRNG(42)
	start := clock.Now()
	sim.Start()

	for clock.Now().Sub(start) < 60*time.Second {
		clock.Advance(time.Duration(1+rng.IntN(40)) * time.Millisecond)
		frames.Pump()
	}

	elapsed := clock.Now().Sub(start).Seconds()
	rate := float64(grid.steps) / elapsed
	if math.Abs(rate-5) > 0.05 {
		t.Fatalf("long-run rate %.3f/s, want 5/s", rate)
	}
}

func TestPauseCancelsPendingFrame(t *testing.T) {
	sim, grid, frames, clock := newHarness(10)
	sim.Start()
	if frames.Pending() != 1 {
		t.Fatalf("pending = %d after Start, want 1", frames.Pending())
	}
	sim.Start()
	if frames.Pending() != 1 {
		t.Fatal("second Start armed another frame")
	}

	sim.Pause()
	if frames.Pending() != 0 {
		t.Fatal("Pause left a frame armed")
	}
	clock.Advance(time.Second)
	frames.Pump()
	if grid.steps != 0 {
		t.Fatalf("paused simulation stepped %d times", grid.steps)
	}
}

func TestPauseFromStepHandlerStopsRearming(t *testing.T) {
	sim, grid, frames, clock := newHarness(10)
	sim.SetStepHandler(func() { sim.Pause() })
	sim.Start()

	clock.Advance(200 * time.Millisecond)
	frames.Pump()
	clock.Advance(200 * time.Millisecond)
	frames.Pump()

	if grid.steps != 1 || frames.Pending() != 0 {
		t.Fatalf("steps=%d pending=%d, want 1 and 0", grid.steps, frames.Pending())
	}
}

func TestDestroyForbidsRestart(t *testing.T) {
	sim, grid, frames, clock := newHarness(10)
	sim.Start()
	sim.Destroy()
	sim.Start()

	clock.Advance(time.Second)
	frames.Pump()

	if sim.Running() || !sim.Destroyed() || grid.steps != 0 {
		t.Fatalf("destroyed simulation running=%v steps=%d", sim.Running(), grid.steps)
	}
}

func TestManualStepIgnoresRunningState(t *testing.T) {
	sim, grid, _, _ := newHarness(10)
	notified := 0
	sim.SetStepHandler(func() { notified++ })

	sim.Step()
	sim.Destroy()
	sim.Step()

	if grid.steps != 2 || notified != 2 {
		t.Fatalf("steps=%d notified=%d, want 2 and 2", grid.steps, notified)
	}
}

func TestSetFPSAppliesOnNextSignal(t *testing.T) {
	sim, grid, frames, clock := newHarness(1)
	sim.Start()

	clock.Advance(100 * time.Millisecond)
	frames.Pump()
	if grid.steps != 0 {
		t.Fatal("stepped before a full second at 1 fps")
	}

	sim.SetFPS(10)
	clock.Advance(10 * time.Millisecond)
	frames.Pump()
	if grid.steps != 1 {
		t.Fatalf("steps = %d after raising fps, want 1", grid.steps)
	}
	if sim.FPS() != 10 {
		t.Fatalf("FPS = %v, want 10", sim.FPS())
	}
}

func TestMalformedFPSDoesNotPanic(t *testing.T) {
	for _, fps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		sim, _, frames, clock := newHarness(fps)
		sim.Start()
		for i := 0; i < 5; i++ {
			clock.Advance(50 * time.Millisecond)
			frames.Pump()
		}
		if !sim.Running() {
			t.Fatalf("fps=%v: simulation stopped", fps)
		}
	}
}

func TestUpdateGridKeepsRunning(t *testing.T) {
	sim, first, frames, clock := newHarness(10)
	sim.Start()

	second := &countingStepper{}
	sim.UpdateGrid(second)
	if !sim.Running() {
		t.Fatal("UpdateGrid changed running state")
	}

	clock.Advance(100 * time.Millisecond)
	frames.Pump()
	if first.steps != 0 || second.steps != 1 {
		t.Fatalf("first=%d second=%d, want 0 and 1", first.steps, second.steps)
	}
}

func TestDrivesImmigrationGrid(t *testing.T) {
	grid := immigration.NewGrid(5, 2, true, immigration.WithSeed(1))
	grid.SetCell(1, 2, 1)
	grid.SetCell(2, 2, 1)
	grid.SetCell(3, 2, 1)
	frames := NewFrameQueue()
	clock := NewManualClock(time.Unix(0, 0))
	sim := New(grid, frames, clock)
	sim.Start()

	for i := 0; i < 20; i++ {
		clock.Advance(10 * time.Millisecond)
		frames.Pump()
	}

	if grid.Generation() != 2 {
		t.Fatalf("generation = %d after 200ms at 10fps, want 2", grid.Generation())
	}
	if grid.Cell(1, 2) != 1 || grid.Cell(2, 1) != 0 {
		t.Fatal("blinker not back in its horizontal phase")
	}
}
