package eco

import "math/rand"

// Params is the closed parameter bundle for the mutualistic
// Lotka-Volterra field: signed interaction matrices, intrinsic growth
// rates and Type II half-saturation constants, all over the same
// species ordering.
type Params struct {
	Mut    [][]float64 // Mut[i][j] >= 0, effect of j on i
	Comp   [][]float64 // Comp[i][j] <= 0
	Growth []float64
	Half   []float64
}

func (p Params) Clone() Params {
	c := Params{
		Mut:    make([][]float64, len(p.Mut)),
		Comp:   make([][]float64, len(p.Comp)),
		Growth: append([]float64(nil), p.Growth...),
		Half:   append([]float64(nil), p.Half...),
	}
	for i := range p.Mut {
		c.Mut[i] = append([]float64(nil), p.Mut[i]...)
	}
	for i := range p.Comp {
		c.Comp[i] = append([]float64(nil), p.Comp[i]...)
	}
	return c
}

// LotkaVolterra is logistic self-limitation plus linear competition
// plus saturating (Type II) mutualism:
//
//	dN[i] = N[i] * (r[i] - N[i] + sum_j Comp[i][j]*N[j] + M[i])
//	M[i]  = raw / (1 + h[i]*raw),  raw = sum_j Mut[i][j]*N[j]
//
// N=0 is always a fixed point; a species at or below zero has a zero
// derivative regardless of its partners.
type LotkaVolterra struct {
	p Params
}

func NewLotkaVolterra(p Params) *LotkaVolterra {
	return &LotkaVolterra{p: p}
}

func (l *LotkaVolterra) Dim() int { return len(l.p.Growth) }

func (l *LotkaVolterra) Params() Params { return l.p.Clone() }

func (l *LotkaVolterra) Derive(n State, _ float64) State {
	dn := make(State, len(n))
	for i := range n {
		if n[i] <= 0 {
			continue // absorbing state
		}
		raw := 0.0
		for j, w := range l.p.Mut[i] {
			raw += w * n[j]
		}
		mut := raw / (1 + l.p.Half[i]*raw)
		comp := 0.0
		for j, w := range l.p.Comp[i] {
			comp += w * n[j]
		}
		dn[i] = n[i] * (l.p.Growth[i] - n[i] + comp + mut)
	}
	return dn
}

// RandomGrowth draws per-species intrinsic growth rates uniformly from
// [lo, hi). Rates are drawn once per run and held fixed.
func RandomGrowth(rng *rand.Rand, n int, lo, hi float64) []float64 {
	r := make([]float64, n)
	for i := range r {
		r[i] = lo + rng.Float64()*(hi-lo)
	}
	return r
}

// UniformHalf broadcasts a single half-saturation constant to every
// species; kept per-species to allow heterogeneity later.
func UniformHalf(n int, h float64) []float64 {
	hs := make([]float64, n)
	for i := range hs {
		hs[i] = h
	}
	return hs
}
