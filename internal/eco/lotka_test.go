package eco

import (
	"math"
	"math/rand"
	"testing"
)

func twoSpeciesParams() Params {
	return Params{
		Mut:    [][]float64{{0, 0.5}, {0.5, 0}},
		Comp:   [][]float64{{0, 0}, {0, 0}},
		Growth: []float64{1.0, 1.0},
		Half:   []float64{0.1, 0.1},
	}
}

func TestAbsorbingZero(t *testing.T) {
	lv := NewLotkaVolterra(twoSpeciesParams())

	dn := lv.Derive(State{0, 5.0}, 0)
	if dn[0] != 0 {
		t.Errorf("extinct species derivative = %g, want 0", dn[0])
	}
	if dn[1] <= 0 {
		t.Errorf("living species should grow, got %g", dn[1])
	}

	dn = lv.Derive(State{-0.5, 5.0}, 0)
	if dn[0] != 0 {
		t.Errorf("negative population derivative = %g, want 0", dn[0])
	}
}

func TestLogisticSelfLimitation(t *testing.T) {
	p := twoSpeciesParams()
	p.Mut = [][]float64{{0, 0}, {0, 0}}
	lv := NewLotkaVolterra(p)

	// With no interactions, dN = N*(r - N): equilibrium at N = r.
	dn := lv.Derive(State{1.0, 1.0}, 0)
	for i, v := range dn {
		if math.Abs(v) > 1e-12 {
			t.Errorf("species %d not at equilibrium: dN = %g", i, v)
		}
	}

	dn = lv.Derive(State{2.0, 0.5}, 0)
	if dn[0] >= 0 {
		t.Errorf("overcrowded species should decline, got %g", dn[0])
	}
	if dn[1] <= 0 {
		t.Errorf("undercrowded species should grow, got %g", dn[1])
	}
}

func TestTypeIISaturation(t *testing.T) {
	lv := NewLotkaVolterra(Params{
		Mut:    [][]float64{{0, 1}, {0, 0}},
		Comp:   [][]float64{{0, 0}, {0, 0}},
		Growth: []float64{0, 1},
		Half:   []float64{1, 1},
	})

	// mutualism term raw/(1+h*raw) must stay below 1/h however large
	// the partner population grows.
	prev := 0.0
	for _, partner := range []float64{1, 10, 100, 1000} {
		dn := lv.Derive(State{1, partner}, 0)
		// dN[0] = 1*(0 - 1 + M), so M = dn[0] + 1
		m := dn[0] + 1
		if m <= prev {
			t.Errorf("mutualism term not increasing: %g after %g", m, prev)
		}
		if m >= 1.0 {
			t.Errorf("mutualism term %g exceeds saturation cap 1/h", m)
		}
		prev = m
	}
}

func TestCompetitionDepresses(t *testing.T) {
	lv := NewLotkaVolterra(Params{
		Mut:    [][]float64{{0, 0}, {0, 0}},
		Comp:   [][]float64{{0, -0.5}, {-0.5, 0}},
		Growth: []float64{1, 1},
		Half:   []float64{0.1, 0.1},
	})

	dn := lv.Derive(State{1, 1}, 0)
	if dn[0] >= 0 || dn[1] >= 0 {
		t.Errorf("competitors at carrying capacity should decline, got %v", dn)
	}
}

func TestParamsCloneIndependence(t *testing.T) {
	p := twoSpeciesParams()
	c := p.Clone()
	c.Mut[0][1] = 99
	c.Growth[0] = 99
	if p.Mut[0][1] == 99 || p.Growth[0] == 99 {
		t.Error("Clone shares backing arrays with original")
	}
}

func TestRandomGrowthRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := RandomGrowth(rng, 100, 0.5, 1.5)
	if len(r) != 100 {
		t.Fatalf("expected 100 rates, got %d", len(r))
	}
	for i, v := range r {
		if v < 0.5 || v >= 1.5 {
			t.Errorf("rate %d = %g outside [0.5, 1.5)", i, v)
		}
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("Clone aliases original")
	}
	if s.Total() != 6 {
		t.Errorf("Total = %g, want 6", s.Total())
	}
	if !s.IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state reported valid")
	}
}
