package integrators

import "github.com/san-kum/ecosim/internal/eco"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f eco.Field, x eco.State, t, dt float64) eco.State {
	dx := f.Derive(x, t)
	result := make(eco.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
