package core

import (
	"math"
	"testing"
	"time"
)

func TestPacerCarriesResidual(t *testing.T) {
	p := NewPacer(5)
	start := time.Unix(0, 0)
	p.Reset(start)

	if p.Ready(start.Add(199 * time.Millisecond)) {
		t.Fatal("pacer fired before the interval elapsed")
	}
	if !p.Ready(start.Add(230 * time.Millisecond)) {
		t.Fatal("pacer did not fire after the interval elapsed")
	}
	if p.Ready(start.Add(399 * time.Millisecond)) {
		t.Fatal("pacer measured the next interval from the poll instead of the tick")
	}
	if !p.Ready(start.Add(400 * time.Millisecond)) {
		t.Fatal("residual was not carried into the next interval")
	}
}

func TestPacerMalformedRates(t *testing.T) {
	start := time.Unix(0, 0)
	cases := []struct {
		fps  float64
		want bool
	}{
		{fps: 0, want: false},
		{fps: math.NaN(), want: false},
		{fps: -3, want: true},
		{fps: math.Inf(1), want: true},
	}
	for _, tc := range cases {
		p := NewPacer(tc.fps)
		p.Reset(start)
		if got := p.Ready(start.Add(time.Second)); got != tc.want {
			t.Fatalf("fps=%v: Ready = %v, want %v", tc.fps, got, tc.want)
		}
	}
}
