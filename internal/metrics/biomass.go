package metrics

import "github.com/san-kum/ecosim/internal/eco"

// Biomass reports the total biomass of the latest sample.
type Biomass struct {
	current float64
}

func NewBiomass() *Biomass { return &Biomass{} }

func (b *Biomass) Name() string { return "total_biomass" }

func (b *Biomass) Observe(n eco.State, _ float64) {
	b.current = n.Total()
}

func (b *Biomass) Value() float64 { return b.current }

func (b *Biomass) Reset() { b.current = 0 }

// Survivors reports how many species are above zero in the latest
// sample.
type Survivors struct {
	count int
}

func NewSurvivors() *Survivors { return &Survivors{} }

func (s *Survivors) Name() string { return "survivors" }

func (s *Survivors) Observe(n eco.State, _ float64) {
	c := 0
	for _, v := range n {
		if v > 0 {
			c++
		}
	}
	s.count = c
}

func (s *Survivors) Value() float64 { return float64(s.count) }

func (s *Survivors) Reset() { s.count = 0 }
