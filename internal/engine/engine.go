// Package engine owns the event-driven simulation loop: continuous
// Lotka-Volterra integration interleaved with stochastic hurricane
// shocks and extinction bookkeeping.
package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/integrators"
	"github.com/san-kum/ecosim/internal/stochastic"
)

// Config is the runtime configuration consumed by the engine.
type Config struct {
	// HurricaneRate is the expected number of shocks per time unit.
	// Zero disables shocks.
	HurricaneRate float64
	// Categories is the ordered severity distribution, probabilities
	// pre-normalized to sum to 1.
	Categories []stochastic.Category
	// ExtinctionThreshold is the fraction of a species' initial
	// population below which it is marked extinct. Applied at shock
	// time; the absolute thresholds are fixed at Reset.
	ExtinctionThreshold float64
	// Dt is the fixed integration step size.
	Dt float64
}

// ConfigPatch carries partial configuration updates; nil fields keep
// their current value. A patched extinction threshold takes effect at
// the next Reset, since absolute thresholds are fixed per run.
type ConfigPatch struct {
	HurricaneRate       *float64
	Categories          []stochastic.Category
	ExtinctionThreshold *float64
	Dt                  *float64
}

// Event records one applied hurricane.
type Event struct {
	T      float64
	Label  string
	Damage float64
}

// Engine holds all mutable simulation state. It is not safe for
// concurrent use; drive it from a single goroutine.
type Engine struct {
	cfg     Config
	model   *eco.LotkaVolterra
	stepper eco.Stepper
	rng     *rand.Rand

	t          float64
	pop        eco.State
	initial    eco.State
	thresholds []float64
	history    []eco.Sample
	events     []Event
	extinct    map[int]struct{}
}

// New builds an engine over the given ecology parameters and initial
// populations. The random source is explicit so runs are reproducible
// from a seed.
func New(p eco.Params, initial eco.State, cfg Config, stepper eco.Stepper, rng *rand.Rand) (*Engine, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if len(initial) != len(p.Growth) {
		return nil, fmt.Errorf("engine: initial population has %d species, parameters have %d", len(initial), len(p.Growth))
	}

	e := &Engine{
		cfg:     cfg,
		model:   eco.NewLotkaVolterra(p),
		stepper: stepper,
		rng:     rng,
	}
	e.Reset(initial)
	return e, nil
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("engine: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.HurricaneRate < 0 {
		return fmt.Errorf("engine: hurricane rate must be non-negative, got %g", cfg.HurricaneRate)
	}
	if cfg.ExtinctionThreshold < 0 || cfg.ExtinctionThreshold > 1 {
		return fmt.Errorf("engine: extinction threshold fraction must be in [0, 1], got %g", cfg.ExtinctionThreshold)
	}
	return nil
}

// Step advances the simulation by duration. At most one hurricane is
// applied per call: a candidate event time is drawn, kept only if it
// falls inside the window, and integration runs up to the event (or
// the window end). Returns the applied event, if any. A non-positive
// duration is a no-op apart from the degenerate zero-window draw.
func (e *Engine) Step(duration float64) (Event, bool) {
	end := e.t + duration

	eventT := 0.0
	pending := false
	if e.cfg.HurricaneRate > 0 && len(e.cfg.Categories) > 0 {
		if w, err := stochastic.WaitingTime(e.rng, e.cfg.HurricaneRate); err == nil {
			if cand := e.t + w; cand <= end {
				eventT = cand
				pending = true
			}
		}
	}

	segEnd := end
	if pending {
		segEnd = eventT
	}
	if segEnd > e.t {
		traj := integrators.Solve(e.stepper, e.model, e.pop, e.t, segEnd, e.cfg.Dt)
		e.history = append(e.history, traj[1:]...)
		e.pop = traj[len(traj)-1].N.Clone()
		e.t = segEnd
	}

	if !pending {
		return Event{}, false
	}

	cat, ok := stochastic.DrawCategory(e.rng, e.cfg.Categories)
	if !ok {
		return Event{}, false
	}
	e.applyShock(cat)

	ev := Event{T: eventT, Label: cat.Label, Damage: cat.Damage}
	e.events = append(e.events, ev)
	e.history = append(e.history, eco.Sample{T: eventT, N: e.pop.Clone()})
	return ev, true
}

// applyShock scales every population by (1 - damage) and clamps any
// species that falls below its threshold to exactly zero, marking it
// extinct. Re-marking an extinct species is a no-op.
func (e *Engine) applyShock(cat stochastic.Category) {
	for i := range e.pop {
		next := e.pop[i] * (1 - cat.Damage)
		if next < e.thresholds[i] {
			next = 0
			e.extinct[i] = struct{}{}
		}
		e.pop[i] = next
	}
}

// Reset reinitializes all mutable state at t=0. A non-nil argument
// replaces the initial populations; extinction thresholds are
// recomputed from them either way.
func (e *Engine) Reset(initial eco.State) {
	if initial != nil {
		e.initial = initial.Clone()
	}
	e.thresholds = make([]float64, len(e.initial))
	for i, n0 := range e.initial {
		e.thresholds[i] = n0 * e.cfg.ExtinctionThreshold
	}
	e.t = 0
	e.pop = e.initial.Clone()
	e.history = []eco.Sample{{T: 0, N: e.pop.Clone()}}
	e.events = nil
	e.extinct = make(map[int]struct{})
}

// UpdateParams hot-swaps the ecology parameters used by subsequent
// integration without touching populations or time.
func (e *Engine) UpdateParams(p eco.Params) {
	e.model = eco.NewLotkaVolterra(p)
}

// UpdateConfig merges a partial configuration, effective on the next
// Step call.
func (e *Engine) UpdateConfig(patch ConfigPatch) error {
	next := e.cfg
	if patch.HurricaneRate != nil {
		next.HurricaneRate = *patch.HurricaneRate
	}
	if patch.Categories != nil {
		next.Categories = append([]stochastic.Category(nil), patch.Categories...)
	}
	if patch.ExtinctionThreshold != nil {
		next.ExtinctionThreshold = *patch.ExtinctionThreshold
	}
	if patch.Dt != nil {
		next.Dt = *patch.Dt
	}
	if err := validate(next); err != nil {
		return err
	}
	e.cfg = next
	return nil
}

func (e *Engine) Time() float64 { return e.t }

func (e *Engine) Populations() eco.State { return e.pop.Clone() }

func (e *Engine) History() []eco.Sample {
	out := make([]eco.Sample, len(e.history))
	for i, s := range e.history {
		out[i] = eco.Sample{T: s.T, N: s.N.Clone()}
	}
	return out
}

func (e *Engine) Events() []Event {
	return append([]Event(nil), e.events...)
}

// Extinct returns the extinct species indices in increasing order.
func (e *Engine) Extinct() []int {
	out := make([]int, 0, len(e.extinct))
	for i := range e.extinct {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.Categories = append([]stochastic.Category(nil), e.cfg.Categories...)
	return cfg
}

func (e *Engine) Params() eco.Params { return e.model.Params() }
