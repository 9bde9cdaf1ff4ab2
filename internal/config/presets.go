package config

// Presets are named climates and demo networks for quick starts.
var Presets = map[string]*Config{
	"calm": {
		Network: NetworkConfig{
			Topology:            "ring",
			RingSize:            8,
			RingMutualism:       0.3,
			RingCompetition:     0.05,
			InitialPopulation:   0.5,
			GrowthMin:           0.5,
			GrowthMax:           1.5,
			HalfSaturation:      0.1,
			PollinationStrength: 1.0,
			DispersalStrength:   1.0,
			Competition:         0.2,
		},
		Simulation: SimConfig{Dt: 0.01, Duration: 50, ExtinctionThreshold: 0.01},
		Hurricanes: HurricaneConfig{Rate: 0},
	},
	"caribbean": {
		Network: NetworkConfig{
			Topology:            "ring",
			RingSize:            12,
			RingMutualism:       0.4,
			RingCompetition:     0.05,
			InitialPopulation:   0.5,
			GrowthMin:           0.5,
			GrowthMax:           1.5,
			HalfSaturation:      0.1,
			PollinationStrength: 1.0,
			DispersalStrength:   1.0,
			Competition:         0.2,
		},
		Simulation: SimConfig{Dt: 0.01, Duration: 100, ExtinctionThreshold: 0.01},
		Hurricanes: HurricaneConfig{Rate: 0.08, Categories: SaffirSimpson()},
	},
	"harsh": {
		Network: NetworkConfig{
			Topology:            "ring",
			RingSize:            10,
			RingMutualism:       0.2,
			RingCompetition:     0.1,
			InitialPopulation:   0.4,
			GrowthMin:           0.3,
			GrowthMax:           1.0,
			HalfSaturation:      0.1,
			PollinationStrength: 1.0,
			DispersalStrength:   1.0,
			Competition:         0.3,
		},
		Simulation: SimConfig{Dt: 0.01, Duration: 100, ExtinctionThreshold: 0.05},
		Hurricanes: HurricaneConfig{
			Rate: 0.25,
			Categories: []CategoryConfig{
				{Label: "cat3", Probability: 0.5, Damage: 0.35},
				{Label: "cat4", Probability: 0.3, Damage: 0.60},
				{Label: "cat5", Probability: 0.2, Damage: 0.85},
			},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
