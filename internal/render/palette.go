package render

import (
	"image/color"
	"math"

	"immigration/internal/core"
)

// Background is the colour of empty cells.
var Background = color.RGBA{R: 17, G: 17, B: 24, A: 255}

var baseSpeciesColors = []color.RGBA{
	{R: 0xff, G: 0x6b, B: 0x6b, A: 255},
	{R: 0x4e, G: 0xcd, B: 0xc4, A: 255},
	{R: 0x96, G: 0xce, B: 0xb4, A: 255},
	{R: 0xfe, G: 0xca, B: 0x57, A: 255},
	{R: 0xff, G: 0x9f, B: 0xf3, A: 255},
	{R: 0x54, G: 0xa0, B: 0xff, A: 255},
	{R: 0x00, G: 0xd2, B: 0xd3, A: 255},
	{R: 0xff, G: 0x9f, B: 0x43, A: 255},
}

// Palette returns colours indexed by species id: entry 0 is the background,
// the first eight species use fixed colours and any further species get
// distinct saturated colours drawn from src.
func Palette(species int, src core.Source) []color.RGBA {
	if species < 0 {
		species = 0
	}
	palette := make([]color.RGBA, 0, species+1)
	palette = append(palette, Background)
	seen := map[color.RGBA]bool{Background: true}
	for i := 0; i < species && i < len(baseSpeciesColors); i++ {
		palette = append(palette, baseSpeciesColors[i])
		seen[baseSpeciesColors[i]] = true
	}
	for _, c := range baseSpeciesColors {
		seen[c] = true
	}
	for len(palette) < species+1 {
		h := float64(src.IntN(360))
		s := float64(70+src.IntN(20)) / 100
		l := float64(50+src.IntN(10)) / 100
		c := hslToRGBA(h, s, l)
		if seen[c] {
			continue
		}
		seen[c] = true
		palette = append(palette, c)
	}
	return palette
}

// hslToRGBA converts hue in degrees and saturation/lightness in [0,1].
func hslToRGBA(h, s, l float64) color.RGBA {
	a := s * math.Min(l, 1-l)
	f := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return uint8(math.Round(255 * v))
	}
	return color.RGBA{R: f(0), G: f(8), B: f(4), A: 255}
}
