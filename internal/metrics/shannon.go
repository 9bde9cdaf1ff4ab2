package metrics

import (
	"math"

	"github.com/san-kum/ecosim/internal/eco"
)

// Shannon tracks the Shannon diversity index H = -sum p_i ln p_i of
// the most recent population sample, with p_i the biomass share of
// species i. Zero-population species contribute nothing.
type Shannon struct {
	last eco.State
}

func NewShannon() *Shannon { return &Shannon{} }

func (s *Shannon) Name() string { return "shannon_diversity" }

func (s *Shannon) Observe(n eco.State, _ float64) {
	s.last = n.Clone()
}

func (s *Shannon) Value() float64 {
	total := s.last.Total()
	if total <= 0 {
		return 0
	}
	h := 0.0
	for _, v := range s.last {
		if v <= 0 {
			continue
		}
		p := v / total
		h -= p * math.Log(p)
	}
	return h
}

func (s *Shannon) Reset() { s.last = nil }
