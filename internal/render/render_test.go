package render

import (
	"image/color"
	"testing"

	"immigration/internal/core"
)

func TestPaletteBaseColorsAndBackground(t *testing.T) {
	p := Palette(3, core.NewRNG(1))
	if len(p) != 4 {
		t.Fatalf("len = %d, want 4", len(p))
	}
	if p[0] != Background {
		t.Fatalf("entry 0 = %v, want background", p[0])
	}
	for i := 1; i < 4; i++ {
		if p[i] != baseSpeciesColors[i-1] {
			t.Fatalf("entry %d = %v, want base colour", i, p[i])
		}
	}
}

func TestPaletteGeneratesDistinctExtras(t *testing.T) {
	a := Palette(40, core.NewRNG(7))
	b := Palette(40, core.NewRNG(7))
	if len(a) != 41 {
		t.Fatalf("len = %d, want 41", len(a))
	}
	seen := map[color.RGBA]bool{}
	for i, c := range a {
		if seen[c] {
			t.Fatalf("colour %v repeated at %d", c, i)
		}
		seen[c] = true
		if b[i] != c {
			t.Fatalf("palette not deterministic at %d", i)
		}
	}
}

func TestHSLPrimaries(t *testing.T) {
	if got := hslToRGBA(0, 1, 0.5); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("red = %v", got)
	}
	if got := hslToRGBA(120, 1, 0.5); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("green = %v", got)
	}
}

func TestFillRGBAClampsUnknownSpecies(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 12)
	FillRGBA(buf, []uint8{0, 1, 9}, palette)

	want := []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func TestImageScalesCells(t *testing.T) {
	snap := core.Snapshot{Size: 2, SpeciesCount: 1, Cells: []uint8{1, 0, 0, 0}}
	palette := []color.RGBA{Background, {R: 200, A: 255}}
	img := Image(snap, palette, 3)

	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 6 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 2); got != palette[1] {
		t.Fatalf("pixel in occupied block = %v", got)
	}
	if got := img.RGBAAt(3, 0); got != Background {
		t.Fatalf("pixel in empty block = %v", got)
	}
}
