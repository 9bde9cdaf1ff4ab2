package batch

import (
	"context"
	"sync"

	"github.com/san-kum/ecosim/internal/config"
	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/experiment"
)

// Result summarizes one replicate of a sweep.
type Result struct {
	Seed       int64
	Hurricanes int
	Extinct    []int
	Survivors  int
	Biomass    float64
}

// Summary aggregates replicate results.
type Summary struct {
	Runs           int
	ExtinctionProb float64 // fraction of runs with at least one extinction
	MeanSurvivors  float64
	MeanBiomass    float64
	MeanHurricanes float64
}

// Sweep runs independent replicates of the same configuration under
// consecutive seeds. Replicates share nothing; each builds its own
// network draw and engine.
type Sweep struct {
	cfg       *config.Config
	stepper   func() eco.Stepper
	seedStart int64
	numRuns   int
}

func New(cfg *config.Config, stepper func() eco.Stepper, seedStart int64, numRuns int) *Sweep {
	return &Sweep{cfg: cfg, stepper: stepper, seedStart: seedStart, numRuns: numRuns}
}

// Run executes all replicates concurrently and returns them in seed order.
func (s *Sweep) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, s.numRuns)
	errs := make([]error, s.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < s.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = s.replicate(ctx, s.seedStart+int64(idx))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *Sweep) replicate(ctx context.Context, seed int64) (Result, error) {
	x, err := experiment.New(s.cfg, seed, s.stepper())
	if err != nil {
		return Result{}, err
	}

	// Step in chunks so cancellation is honored mid-run.
	target := s.cfg.Simulation.Duration
	chunk := target / 100
	if chunk <= 0 {
		chunk = target
	}
	for x.Eng.Time() < target {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		x.Eng.Step(min(chunk, target-x.Eng.Time()))
	}

	pop := x.Eng.Populations()
	survivors := 0
	for _, n := range pop {
		if n > 0 {
			survivors++
		}
	}
	return Result{
		Seed:       seed,
		Hurricanes: len(x.Eng.Events()),
		Extinct:    x.Eng.Extinct(),
		Survivors:  survivors,
		Biomass:    pop.Total(),
	}, nil
}

// Summarize reduces replicate results to ensemble statistics.
func Summarize(results []Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}
	sum := Summary{Runs: len(results)}
	withExtinctions := 0
	for _, r := range results {
		if len(r.Extinct) > 0 {
			withExtinctions++
		}
		sum.MeanSurvivors += float64(r.Survivors)
		sum.MeanBiomass += r.Biomass
		sum.MeanHurricanes += float64(r.Hurricanes)
	}
	n := float64(len(results))
	sum.ExtinctionProb = float64(withExtinctions) / n
	sum.MeanSurvivors /= n
	sum.MeanBiomass /= n
	sum.MeanHurricanes /= n
	return sum
}
