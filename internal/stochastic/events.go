// Package stochastic draws hurricane waiting times and categories from
// an explicit random source, so runs are reproducible from a seed.
package stochastic

import (
	"errors"
	"math"
	"math/rand"
)

var ErrNonPositiveRate = errors.New("stochastic: event rate must be positive")

// Category is one entry of an ordered categorical distribution over
// shock severities. Probabilities are expected pre-normalized; minor
// floating-point shortfall is tolerated by falling back to the last
// entry.
type Category struct {
	Label       string
	Probability float64
	Damage      float64 // fraction of population removed, in [0, 1]
}

// WaitingTime draws an exponential inter-event time with rate lambda
// by inversion sampling.
func WaitingTime(rng *rand.Rand, lambda float64) (float64, error) {
	if lambda <= 0 {
		return 0, ErrNonPositiveRate
	}
	return waitingTime(rng.Float64(), lambda), nil
}

func waitingTime(u, lambda float64) float64 {
	return -math.Log(1-u) / lambda
}

// DrawCategory selects a category by its cumulative probability in
// list order. Returns false only for an empty list.
func DrawCategory(rng *rand.Rand, cats []Category) (Category, bool) {
	if len(cats) == 0 {
		return Category{}, false
	}
	return pickCategory(rng.Float64(), cats), true
}

// pickCategory returns the first category whose cumulative probability
// reaches u; the comparison is inclusive at the boundary. If rounding
// leaves the cumulative sum short of 1, the last category wins.
func pickCategory(u float64, cats []Category) Category {
	cum := 0.0
	for _, c := range cats {
		cum += c.Probability
		if cum >= u {
			return c
		}
	}
	return cats[len(cats)-1]
}
