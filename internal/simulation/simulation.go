package simulation

import "immigration/internal/core"

// DefaultFPS is the step rate a new Simulation targets.
const DefaultFPS = 10

// Stepper is the transition the scheduler drives. *immigration.Grid
// satisfies it.
type Stepper interface {
	Step()
}

// Simulation steps a grid at a bounded rate in response to frame signals
// from a FrameHost. It is created paused and is not safe for concurrent use;
// everything runs on the goroutine that pumps the host.
type Simulation struct {
	grid  Stepper
	host  FrameHost
	clock Clock
	pacer *core.Pacer

	running   bool
	destroyed bool
	armed     bool
	frame     FrameID

	onStep func()
}

// New returns a paused Simulation. A nil clock uses the wall clock.
func New(grid Stepper, host FrameHost, clock Clock) *Simulation {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Simulation{
		grid:  grid,
		host:  host,
		clock: clock,
		pacer: core.NewPacer(DefaultFPS),
	}
}

// Running reports whether scheduled stepping is active.
func (s *Simulation) Running() bool { return s.running }

// Destroyed reports whether Destroy has been called.
func (s *Simulation) Destroyed() bool { return s.destroyed }

// FPS returns the target step rate.
func (s *Simulation) FPS() float64 { return s.pacer.FPS() }

// Grid returns the stepper currently being driven.
func (s *Simulation) Grid() Stepper { return s.grid }

// SetStepHandler registers the callback fired after every transition,
// scheduled or manual.
func (s *Simulation) SetStepHandler(fn func()) { s.onStep = fn }

// Start begins scheduled stepping. It does nothing when already running or
// after Destroy.
func (s *Simulation) Start() {
	if s.running || s.destroyed {
		return
	}
	s.running = true
	s.pacer.Reset(s.clock.Now())
	s.arm()
}

// Pause stops scheduled stepping and cancels the pending frame request.
func (s *Simulation) Pause() {
	s.running = false
	if s.armed {
		s.host.CancelFrame(s.frame)
		s.armed = false
	}
}

// Destroy pauses and prevents any later Start.
func (s *Simulation) Destroy() {
	s.Pause()
	s.destroyed = true
}

// Step performs one transition and fires the step handler regardless of the
// running state.
func (s *Simulation) Step() {
	if s.grid != nil {
		s.grid.Step()
	}
	if s.onStep != nil {
		s.onStep()
	}
}

// SetFPS changes the target rate from the next frame signal on. The value is
// not validated.
func (s *Simulation) SetFPS(fps float64) { s.pacer.SetFPS(fps) }

// UpdateGrid redirects the scheduler to grid without changing the running state.
func (s *Simulation) UpdateGrid(grid Stepper) { s.grid = grid }

func (s *Simulation) arm() {
	s.frame = s.host.RequestFrame(s.onFrame)
	s.armed = true
}

func (s *Simulation) onFrame() {
	s.armed = false
	if !s.running {
		return
	}
	if s.pacer.Ready(s.clock.Now()) {
		s.Step()
	}
	if s.running && !s.armed {
		s.arm()
	}
}
