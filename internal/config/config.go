// Package config loads and saves simulation scenarios as YAML files.
// A scenario names the plant, the controller gains and the horizon; the
// CLI merges it with explicit flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pidlab/internal/loop"
	"pidlab/internal/lti"
	"pidlab/internal/pid"
	"pidlab/internal/plant"
)

// ErrInvalidScenario rejects scenarios that fail validation
var ErrInvalidScenario = errors.New("config: invalid scenario")

// PlantConfig describes a custom plant when no catalog system is named
type PlantConfig struct {
	Type  string  `yaml:"type"` // first_order, second_order, integrator, delayed
	K     float64 `yaml:"k"`
	Tau   float64 `yaml:"tau"`
	Wn    float64 `yaml:"wn"`
	Zeta  float64 `yaml:"zeta"`
	Delay float64 `yaml:"delay"`
}

// Config is one complete simulation scenario
type Config struct {
	System            string       `yaml:"system"` // catalog name; empty selects Plant
	Plant             PlantConfig  `yaml:"plant"`
	Gains             pid.Gains    `yaml:"gains"`
	Horizon           loop.Horizon `yaml:"horizon"`
	Reference         float64      `yaml:"reference"`
	SettlingTolerance float64      `yaml:"settling_tolerance"`
}

// DefaultConfig is the underdamped catalog plant under modest PI control
func DefaultConfig() *Config {
	return &Config{
		System:            plant.Underdamped.String(),
		Gains:             pid.Gains{Kp: 1, Ki: 0.5, Kd: 0.1},
		Horizon:           loop.DefaultHorizon(),
		Reference:         loop.DefaultReference,
		SettlingTolerance: 0.02,
	}
}

// Load reads a scenario over the defaults, so partial files work
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the scenario as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scenario before any simulation is attempted
func (c *Config) Validate() error {
	if c.Horizon.TEnd <= 0 || c.Horizon.Samples < 2 {
		return fmt.Errorf("%w: horizon t_end=%.4g samples=%d", ErrInvalidScenario, c.Horizon.TEnd, c.Horizon.Samples)
	}
	if c.SettlingTolerance <= 0 {
		return fmt.Errorf("%w: settling tolerance %.4g", ErrInvalidScenario, c.SettlingTolerance)
	}
	if c.System == "" && c.Plant.Type == "" {
		return fmt.Errorf("%w: neither a catalog system nor a plant type is set", ErrInvalidScenario)
	}
	_, err := c.BuildPlant()
	return err
}

// BuildPlant resolves the scenario's plant, preferring the catalog name
func (c *Config) BuildPlant() (lti.TransferFunction, error) {
	if c.System != "" {
		sys, err := plant.ParseSystem(c.System)
		if err != nil {
			return lti.TransferFunction{}, err
		}
		return sys.Build()
	}
	switch c.Plant.Type {
	case "first_order":
		return plant.FirstOrder(c.Plant.K, c.Plant.Tau)
	case "second_order":
		return plant.SecondOrder(c.Plant.K, c.Plant.Wn, c.Plant.Zeta)
	case "integrator":
		return plant.Integrator(c.Plant.K), nil
	case "delayed":
		return plant.Delayed(c.Plant.K, c.Plant.Tau, c.Plant.Delay)
	}
	return lti.TransferFunction{}, fmt.Errorf("%w: plant type %q", ErrInvalidScenario, c.Plant.Type)
}
