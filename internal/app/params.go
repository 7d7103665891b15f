package app

import (
	"fmt"
	"strconv"

	"immigration/internal/core"
	"immigration/internal/sims/immigration"
)

const (
	minGridSize = 10
	maxGridSize = 400
	maxHUDFPS   = 120
)

var (
	_ core.ParameterControlsProvider = (*Controller)(nil)
	_ core.IntParameterSetter        = (*Controller)(nil)
	_ core.FloatParameterSetter      = (*Controller)(nil)
	_ core.BoolParameterSetter       = (*Controller)(nil)
)

// Parameters exposes stats and settings for the HUD.
func (c *Controller) Parameters() core.ParameterSnapshot {
	stats := c.Stats()
	population := []core.Parameter{
		intParam("generation", "Generation", stats.Generation),
		intParam("total", "Live cells", stats.Total),
	}
	for s := 1; s <= c.grid.SpeciesCount(); s++ {
		population = append(population, intParam(fmt.Sprintf("species_%d", s), fmt.Sprintf("Species %d", s), stats.Species[uint8(s)]))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Population", Params: population},
		{
			Name: "Settings",
			Params: []core.Parameter{
				intParam("size", "Grid size", c.grid.Size()),
				intParam("species", "Species", c.grid.SpeciesCount()),
				boolParam("wrap", "Wraparound", c.grid.Wraparound()),
				intParam("selected", "Paint species", int(c.selected)),
				floatParam("fps", "Steps/sec", c.sim.FPS()),
				floatParam("density", "Seed density", c.density),
			},
		},
	}}
}

// ParameterControls lists the settings adjustable from the HUD.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "size", Label: "Grid size", Type: core.ParamTypeInt, Step: 10, Min: minGridSize, Max: maxGridSize, HasMin: true, HasMax: true},
		{Key: "species", Label: "Species", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: immigration.MaxSpecies, HasMin: true, HasMax: true},
		{Key: "wrap", Label: "Wraparound", Type: core.ParamTypeBool},
		{Key: "selected", Label: "Paint species", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: float64(c.grid.SpeciesCount()), HasMin: true, HasMax: true},
		{Key: "fps", Label: "Steps/sec", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: maxHUDFPS, HasMin: true, HasMax: true},
		{Key: "density", Label: "Seed density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies a HUD adjustment. Size rebuilds the grid; species
// only affects the next reseed.
func (c *Controller) SetIntParameter(key string, value int) bool {
	switch key {
	case "size":
		if value < minGridSize || value > maxGridSize {
			return false
		}
		s := c.Settings()
		s.GridSize = value
		c.ApplySettings(s)
	case "species":
		if value < 1 || value > immigration.MaxSpecies {
			return false
		}
		c.SetSpeciesCount(value)
	case "selected":
		c.SelectSpecies(value)
	default:
		return false
	}
	return true
}

// SetBoolParameter switches wraparound, which rebuilds the grid.
func (c *Controller) SetBoolParameter(key string, value bool) bool {
	if key != "wrap" {
		return false
	}
	s := c.Settings()
	s.Wraparound = value
	c.ApplySettings(s)
	return true
}

// SetFloatParameter applies a HUD adjustment to fps or density.
func (c *Controller) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "fps":
		if value <= 0 {
			return false
		}
		c.SetFPS(value)
	case "density":
		if value < 0 || value > 1 {
			return false
		}
		c.SetDensity(value)
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
