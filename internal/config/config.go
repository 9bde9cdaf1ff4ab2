package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt                  = 0.01
	DefaultDuration            = 50.0
	DefaultHurricaneRate       = 0.05
	DefaultExtinctionThreshold = 0.01
	DefaultHalfSaturation      = 0.1
	DefaultGrowthMin           = 0.5
	DefaultGrowthMax           = 1.5
	DefaultInitialPopulation   = 0.5
)

type Config struct {
	Network    NetworkConfig   `yaml:"network"`
	Simulation SimConfig       `yaml:"simulation"`
	Hurricanes HurricaneConfig `yaml:"hurricanes"`
}

type NetworkConfig struct {
	// Topology is "bipartite" (CSV biadjacency layers) or "ring"
	// (synthetic test topology).
	Topology string `yaml:"topology"`

	PollinationCSV      string  `yaml:"pollination_csv"`
	DispersalCSV        string  `yaml:"dispersal_csv"`
	PollinationStrength float64 `yaml:"pollination_strength"`
	DispersalStrength   float64 `yaml:"dispersal_strength"`
	Competition         float64 `yaml:"competition"`

	RingSize        int     `yaml:"ring_size"`
	RingMutualism   float64 `yaml:"ring_mutualism"`
	RingCompetition float64 `yaml:"ring_competition"`

	InitialPopulation float64 `yaml:"initial_population"`
	GrowthMin         float64 `yaml:"growth_min"`
	GrowthMax         float64 `yaml:"growth_max"`
	HalfSaturation    float64 `yaml:"half_saturation"`
}

type SimConfig struct {
	Dt                  float64 `yaml:"dt"`
	Duration            float64 `yaml:"duration"`
	Seed                int64   `yaml:"seed"`
	ExtinctionThreshold float64 `yaml:"extinction_threshold"`
}

type HurricaneConfig struct {
	Rate       float64          `yaml:"rate"`
	Categories []CategoryConfig `yaml:"categories"`
}

type CategoryConfig struct {
	Label       string  `yaml:"label"`
	Probability float64 `yaml:"probability"`
	Damage      float64 `yaml:"damage"`
}

func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			Topology:            "ring",
			RingSize:            8,
			RingMutualism:       0.3,
			RingCompetition:     0.05,
			PollinationStrength: 1.0,
			DispersalStrength:   1.0,
			Competition:         0.2,
			InitialPopulation:   DefaultInitialPopulation,
			GrowthMin:           DefaultGrowthMin,
			GrowthMax:           DefaultGrowthMax,
			HalfSaturation:      DefaultHalfSaturation,
		},
		Simulation: SimConfig{
			Dt:                  DefaultDt,
			Duration:            DefaultDuration,
			ExtinctionThreshold: DefaultExtinctionThreshold,
		},
		Hurricanes: HurricaneConfig{
			Rate:       DefaultHurricaneRate,
			Categories: SaffirSimpson(),
		},
	}
}

// SaffirSimpson is the default five-category severity table. The
// probabilities lean toward weak storms, the damage fractions toward
// the strong tail.
func SaffirSimpson() []CategoryConfig {
	return []CategoryConfig{
		{Label: "cat1", Probability: 0.35, Damage: 0.05},
		{Label: "cat2", Probability: 0.27, Damage: 0.15},
		{Label: "cat3", Probability: 0.20, Damage: 0.35},
		{Label: "cat4", Probability: 0.12, Damage: 0.60},
		{Label: "cat5", Probability: 0.06, Damage: 0.85},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and normalizes category probabilities to sum
// to 1, so downstream draws can rely on a proper distribution.
func (c *Config) Validate() error {
	if c.Simulation.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Simulation.Dt)
	}
	if c.Hurricanes.Rate < 0 {
		return fmt.Errorf("config: hurricane rate must be non-negative, got %g", c.Hurricanes.Rate)
	}
	if f := c.Simulation.ExtinctionThreshold; f < 0 || f > 1 {
		return fmt.Errorf("config: extinction threshold must be in [0, 1], got %g", f)
	}
	if c.Network.GrowthMin > c.Network.GrowthMax {
		return fmt.Errorf("config: growth_min %g exceeds growth_max %g", c.Network.GrowthMin, c.Network.GrowthMax)
	}

	if c.Hurricanes.Rate > 0 && len(c.Hurricanes.Categories) == 0 {
		return fmt.Errorf("config: hurricane rate %g set but no categories defined", c.Hurricanes.Rate)
	}
	total := 0.0
	for _, cat := range c.Hurricanes.Categories {
		if cat.Probability < 0 {
			return fmt.Errorf("config: category %q has negative probability", cat.Label)
		}
		if cat.Damage < 0 || cat.Damage > 1 {
			return fmt.Errorf("config: category %q damage must be in [0, 1], got %g", cat.Label, cat.Damage)
		}
		total += cat.Probability
	}
	if len(c.Hurricanes.Categories) > 0 {
		if total <= 0 {
			return fmt.Errorf("config: category probabilities sum to zero")
		}
		if math.Abs(total-1) > 1e-9 {
			for i := range c.Hurricanes.Categories {
				c.Hurricanes.Categories[i].Probability /= total
			}
		}
	}
	return nil
}
