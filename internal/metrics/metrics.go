// Package metrics provides summary observers over population
// trajectories, reported after a run and in the live view.
package metrics

import "github.com/san-kum/ecosim/internal/eco"

type Metric interface {
	Name() string
	Observe(n eco.State, t float64)
	Value() float64
	Reset()
}

// Defaults returns the standard metric set for a run.
func Defaults() []Metric {
	return []Metric{
		NewShannon(),
		NewBiomass(),
		NewSurvivors(),
	}
}

// ObserveAll feeds one sample to every metric.
func ObserveAll(ms []Metric, n eco.State, t float64) {
	for _, m := range ms {
		m.Observe(n, t)
	}
}
