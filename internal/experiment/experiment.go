// Package experiment assembles a ready-to-run engine from a
// configuration: network construction, parameter draws and seeding.
package experiment

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/ecosim/internal/config"
	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/engine"
	"github.com/san-kum/ecosim/internal/network"
	"github.com/san-kum/ecosim/internal/stochastic"
)

type Experiment struct {
	Cfg      *config.Config
	Eng      *engine.Engine
	Seed     int64
	Topology string
	Species  int
}

// New builds the interaction network named by the config, draws growth
// rates from the seeded source and wires up the engine.
func New(cfg *config.Config, seed int64, stepper eco.Stepper) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := buildNetwork(&cfg.Network)
	if err != nil {
		return nil, err
	}
	nt := m.Total()

	rng := rand.New(rand.NewSource(seed))
	p := eco.Params{
		Mut:    m.Mut,
		Comp:   m.Comp,
		Growth: eco.RandomGrowth(rng, nt, cfg.Network.GrowthMin, cfg.Network.GrowthMax),
		Half:   eco.UniformHalf(nt, cfg.Network.HalfSaturation),
	}

	initial := make(eco.State, nt)
	for i := range initial {
		initial[i] = cfg.Network.InitialPopulation
	}

	eng, err := engine.New(p, initial, engine.Config{
		HurricaneRate:       cfg.Hurricanes.Rate,
		Categories:          Categories(cfg.Hurricanes.Categories),
		ExtinctionThreshold: cfg.Simulation.ExtinctionThreshold,
		Dt:                  cfg.Simulation.Dt,
	}, stepper, rng)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		Cfg:      cfg,
		Eng:      eng,
		Seed:     seed,
		Topology: cfg.Network.Topology,
		Species:  nt,
	}, nil
}

func buildNetwork(nc *config.NetworkConfig) (*network.Matrices, error) {
	switch nc.Topology {
	case "ring":
		return network.BuildRing(nc.RingSize, nc.RingMutualism, nc.RingCompetition)
	case "bipartite":
		b := network.Bipartite{
			PollinationStrength: nc.PollinationStrength,
			DispersalStrength:   nc.DispersalStrength,
			Competition:         nc.Competition,
		}
		if nc.PollinationCSV != "" {
			mat, err := network.LoadMatrix(nc.PollinationCSV)
			if err != nil {
				return nil, err
			}
			b.Pollination = mat
		}
		if nc.DispersalCSV != "" {
			mat, err := network.LoadMatrix(nc.DispersalCSV)
			if err != nil {
				return nil, err
			}
			b.Dispersal = mat
		}
		return network.Build(b)
	default:
		return nil, fmt.Errorf("experiment: unknown topology %q", nc.Topology)
	}
}

// Categories converts configured severities into the sampler's form.
func Categories(cats []config.CategoryConfig) []stochastic.Category {
	out := make([]stochastic.Category, len(cats))
	for i, c := range cats {
		out[i] = stochastic.Category{Label: c.Label, Probability: c.Probability, Damage: c.Damage}
	}
	return out
}

// Run advances the engine by duration, stepping again after each
// hurricane until the target time is reached.
func (x *Experiment) Run(duration float64) {
	target := x.Eng.Time() + duration
	for x.Eng.Time() < target {
		x.Eng.Step(target - x.Eng.Time())
	}
}
