package immigration

import "sort"

var presets = map[string]Config{
	"immigration": {Size: 50, Species: 2, Wraparound: true, Density: 0.2, Seed: 1337},
	"life":        {Size: 64, Species: 1, Wraparound: true, Density: 0.3, Seed: 1337},
	"quadlife":    {Size: 96, Species: 4, Wraparound: true, Density: 0.25, Seed: 1337},
	"walled":      {Size: 50, Species: 2, Wraparound: false, Density: 0.2, Seed: 1337},
}

// Preset returns the named configuration.
func Preset(name string) (Config, bool) {
	c, ok := presets[name]
	return c, ok
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
