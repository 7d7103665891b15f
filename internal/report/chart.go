package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooFewSamples is returned when a chart would have no extent.
var ErrTooFewSamples = errors.New("report: need at least two samples to chart")

// ChartOptions sizes the rendered chart.
type ChartOptions struct {
	Width  int
	Height int
	Title  string
}

// WriteChart renders the per-species population of h as a PNG line chart.
// palette is indexed by species id and supplies the line colours.
func WriteChart(w io.Writer, h *History, palette []color.RGBA, opts ChartOptions) error {
	if h.Len() < 2 {
		return ErrTooFewSamples
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 320
	}

	xs := h.Generations()
	peak := 1.0
	var series []chart.Series
	for s := 1; s <= h.Species(); s++ {
		ys := h.Series(s)
		for _, v := range ys {
			if v > peak {
				peak = v
			}
		}
		stroke := drawing.ColorBlack
		if s < len(palette) {
			c := palette[s]
			stroke = drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("Species %d", s),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: stroke, StrokeWidth: 2.0},
		})
	}

	xMin, xMax := xs[0], xs[len(xs)-1]
	if xMax <= xMin {
		xMax = xMin + 1
	}
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:  "Generation",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "Cells",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: peak},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render population chart: %w", err)
	}
	return nil
}
