package eco

import "math"

// State is a population vector over the flattened species index space.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Total() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

// Field is a time-dependent vector field over population states.
type Field interface {
	Derive(n State, t float64) State
	Dim() int
}

// Stepper advances a state through one integration step of size dt.
type Stepper interface {
	Step(f Field, n State, t, dt float64) State
}

// Sample is a point on a trajectory.
type Sample struct {
	T float64
	N State
}
