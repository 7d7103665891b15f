package core

import (
	"math"
	"time"
)

// Pacer gates updates to a target rate driven by externally supplied
// timestamps. Leftover time past each interval is carried into the next one,
// so the long-run rate does not drift with irregular polling.
type Pacer struct {
	fps  float64
	last time.Time
}

// NewPacer constructs a Pacer targeting fps updates per second.
func NewPacer(fps float64) *Pacer {
	return &Pacer{fps: fps}
}

// SetFPS changes the target rate. The value is not validated: zero or NaN
// never fires and a negative rate fires on every poll.
func (p *Pacer) SetFPS(fps float64) { p.fps = fps }

// FPS returns the target rate.
func (p *Pacer) FPS() float64 { return p.fps }

// Reset marks now as the time of the last accepted update.
func (p *Pacer) Reset(now time.Time) { p.last = now }

// Interval returns the target frame interval in milliseconds.
func (p *Pacer) Interval() float64 { return 1000 / p.fps }

// Ready reports whether an update is due at now. When it is, the last update
// time advances to now minus the residual beyond the interval.
func (p *Pacer) Ready(now time.Time) bool {
	elapsed := float64(now.Sub(p.last)) / float64(time.Millisecond)
	interval := p.Interval()
	if !(elapsed >= interval) {
		return false
	}
	residual := math.Mod(elapsed, interval)
	if math.IsNaN(residual) || math.IsInf(residual, 0) {
		residual = 0
	}
	p.last = now.Add(-time.Duration(residual * float64(time.Millisecond)))
	return true
}
