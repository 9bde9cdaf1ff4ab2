package integrators

import "github.com/san-kum/ecosim/internal/eco"

// RK4 is the classical fixed-step four-stage Runge-Kutta method.
// Scratch buffers are reused across steps; a single RK4 value must not
// be shared between goroutines.
type RK4 struct {
	k1, k2, k3, k4 eco.State
	scratch        eco.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(eco.State, n)
		r.k2 = make(eco.State, n)
		r.k3 = make(eco.State, n)
		r.k4 = make(eco.State, n)
		r.scratch = make(eco.State, n)
	}
}

func (r *RK4) Step(f eco.Field, x eco.State, t, dt float64) eco.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, f.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, f.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, f.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, f.Derive(r.scratch, t+dt))

	result := make(eco.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
