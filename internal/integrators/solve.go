package integrators

import "github.com/san-kum/ecosim/internal/eco"

// Solve advances x0 from t0 to t1 with fixed step dt, shrinking the
// final step so the last sample lands exactly on t1. The returned
// trajectory includes the initial point and owns independent copies of
// every state. Deterministic: identical inputs give identical output.
func Solve(s eco.Stepper, f eco.Field, x0 eco.State, t0, t1, dt float64) []eco.Sample {
	traj := []eco.Sample{{T: t0, N: x0.Clone()}}
	if t1 <= t0 || dt <= 0 {
		return traj
	}

	x := x0.Clone()
	t := t0
	for t < t1 {
		h := dt
		last := false
		// The tolerance absorbs accumulated rounding in t, so a run
		// whose length is a whole number of steps does not end with a
		// sliver step.
		if rem := t1 - t; rem <= h*(1+1e-9) {
			h = rem
			last = true
		}
		x = s.Step(f, x, t, h)
		if last {
			t = t1
		} else {
			t += h
		}
		traj = append(traj, eco.Sample{T: t, N: x.Clone()})
	}
	return traj
}
