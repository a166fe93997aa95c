package config

// Presets are named configurations per scenario, applied before config
// files and flags.
var Presets = map[string]map[string]*Config{
	"swing": {
		"gentle": {
			Scenario: "swing", Dt: DefaultDt, Duration: 8.0,
			Rope:  RopeConfig{Samples: 16, Strength: 800, Damper: 14, Impulse: 15, WaveCount: 3, WaveHeight: 0.6, Falloff: "linear"},
			Scene: SceneConfig{Origin: [3]float64{0, 2, 0}, Grapple: [3]float64{0, 10, 0}, Gravity: 9.81, Damping: 0.4, Theta: 0.4},
		},
		"wide": {
			Scenario: "swing", Dt: DefaultDt, Duration: 10.0,
			Rope:  RopeConfig{Samples: 24, Strength: 600, Damper: 10, Impulse: 25, WaveCount: 4, WaveHeight: 1.2, Falloff: "smooth"},
			Scene: SceneConfig{Origin: [3]float64{0, 2, 0}, Grapple: [3]float64{0, 12, 0}, Gravity: 9.81, Damping: 0.15, Theta: 1.2},
		},
	},
	"retract": {
		"fast": {
			Scenario: "retract", Dt: DefaultDt, Duration: 4.0,
			Rope:  RopeConfig{Samples: 16, Strength: 1000, Damper: 18, Impulse: 30, WaveCount: 5, WaveHeight: 0.8, Falloff: "taper"},
			Scene: SceneConfig{Origin: [3]float64{0, 2, 0}, Grapple: [3]float64{8, 8, 0}, Speed: 6, MinDistance: 1},
		},
		"slow": {
			Scenario: "retract", Dt: DefaultDt, Duration: 8.0,
			Rope:  RopeConfig{Samples: 16, Strength: 800, Damper: 14, Impulse: 15, WaveCount: 3, WaveHeight: 1, Falloff: "linear"},
			Scene: SceneConfig{Origin: [3]float64{0, 2, 0}, Grapple: [3]float64{8, 8, 0}, Speed: 1.5, MinDistance: 1},
		},
	},
	"flicker": {
		"rapid": {
			Scenario: "flicker", Dt: DefaultDt, Duration: 6.0,
			Rope:  RopeConfig{Samples: 16, Strength: 800, Damper: 14, Impulse: 15, WaveCount: 3, WaveHeight: 1, Falloff: "linear"},
			Scene: SceneConfig{Origin: [3]float64{0, 2, 0}, Grapple: [3]float64{0, 10, 0}, Gravity: 9.81, Damping: 0.3, Theta: 0.9, OnTime: 0.3, OffTime: 0.2},
		},
	},
	"static": {
		"taut": {
			Scenario: "static", Dt: DefaultDt, Duration: 3.0,
			Rope:  RopeConfig{Samples: 16, Strength: 800, Damper: 14, Impulse: 15, WaveCount: 3, WaveHeight: 1, Falloff: "linear"},
			Scene: SceneConfig{Origin: [3]float64{0, 0, 0}, Grapple: [3]float64{0, 0, 10}},
		},
	},
}

// GetPreset returns the named preset or nil.
func GetPreset(scenario, name string) *Config {
	presets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	return presets[name]
}

// ListPresets returns the preset names for a scenario, or nil.
func ListPresets(scenario string) []string {
	presets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
