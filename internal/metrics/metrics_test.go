package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ecosim/internal/eco"
)

func TestShannon(t *testing.T) {
	m := NewShannon()

	m.Observe(eco.State{1, 1}, 0)
	if got := m.Value(); math.Abs(got-math.Ln2) > 1e-12 {
		t.Errorf("even split of two species: H = %g, want ln 2", got)
	}

	m.Observe(eco.State{1, 0}, 1)
	if got := m.Value(); got != 0 {
		t.Errorf("single species: H = %g, want 0", got)
	}

	m.Observe(eco.State{0, 0}, 2)
	if got := m.Value(); got != 0 {
		t.Errorf("empty community: H = %g, want 0", got)
	}
}

func TestShannonUsesLatestSample(t *testing.T) {
	m := NewShannon()
	m.Observe(eco.State{1, 1, 1, 1}, 0)
	m.Observe(eco.State{1, 0, 0, 0}, 1)
	if got := m.Value(); got != 0 {
		t.Errorf("H = %g, want 0 from the latest sample", got)
	}
}

func TestBiomass(t *testing.T) {
	m := NewBiomass()
	m.Observe(eco.State{0.5, 1.5, 2}, 0)
	if m.Value() != 4 {
		t.Errorf("biomass = %g, want 4", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear value")
	}
}

func TestSurvivors(t *testing.T) {
	m := NewSurvivors()
	m.Observe(eco.State{0.5, 0, 1.5, 0}, 0)
	if m.Value() != 2 {
		t.Errorf("survivors = %g, want 2", m.Value())
	}
}

func TestObserveAll(t *testing.T) {
	ms := Defaults()
	ObserveAll(ms, eco.State{1, 1}, 0)
	for _, m := range ms {
		if m.Name() == "" {
			t.Error("metric has empty name")
		}
	}
	for _, m := range ms {
		if m.Name() == "survivors" && m.Value() != 2 {
			t.Errorf("survivors = %g, want 2", m.Value())
		}
	}
}
