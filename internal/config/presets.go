package config

import (
	"sort"

	"pidlab/internal/loop"
	"pidlab/internal/pid"
	"pidlab/internal/plant"
)

// Presets are ready-made scenarios for the tuning walkthroughs
var Presets = map[string]*Config{
	"sluggish": {
		System:            plant.FirstOrderSlow.String(),
		Gains:             pid.Gains{Kp: 0.33, Ki: 0.056, Kd: 0.75},
		Horizon:           loop.Horizon{TEnd: 30, Samples: 1500},
		Reference:         1,
		SettlingTolerance: 0.02,
	},
	"oscillatory": {
		System:            plant.Underdamped.String(),
		Gains:             pid.Gains{Kp: 0.6, Ki: 1, Kd: 1},
		Horizon:           loop.DefaultHorizon(),
		Reference:         1,
		SettlingTolerance: 0.02,
	},
	"level_control": {
		System:            plant.PureIntegrator.String(),
		Gains:             pid.Gains{Kp: 1, Ki: 0, Kd: 0.5},
		Horizon:           loop.DefaultHorizon(),
		Reference:         1,
		SettlingTolerance: 0.02,
	},
	"dead_time": {
		System:            plant.DelayDominant.String(),
		Gains:             pid.Gains{Kp: 0.5, Ki: 0.4, Kd: 0},
		Horizon:           loop.Horizon{TEnd: 20, Samples: 1000},
		Reference:         1,
		SettlingTolerance: 0.02,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the preset names in sorted order
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
