package stochastic

import (
	"math"
	"math/rand"
	"testing"
)

func TestWaitingTimeRejectsNonPositiveRate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, lambda := range []float64{0, -1} {
		if _, err := WaitingTime(rng, lambda); err == nil {
			t.Errorf("lambda=%g: expected error", lambda)
		}
	}
}

func TestWaitingTimeInversion(t *testing.T) {
	tests := []struct {
		u, lambda, want float64
	}{
		{0, 1, 0},
		{0.5, 1, math.Ln2},
		{0.5, 2, math.Ln2 / 2},
		{1 - math.Exp(-3), 1, 3},
	}
	for _, tt := range tests {
		got := waitingTime(tt.u, tt.lambda)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("waitingTime(%g, %g) = %g, want %g", tt.u, tt.lambda, got, tt.want)
		}
	}
}

func TestWaitingTimeMeanMatchesRate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lambda := 2.5
	sum := 0.0
	n := 20000
	for i := 0; i < n; i++ {
		w, err := WaitingTime(rng, lambda)
		if err != nil {
			t.Fatal(err)
		}
		if w < 0 {
			t.Fatalf("negative waiting time %g", w)
		}
		sum += w
	}
	mean := sum / float64(n)
	if math.Abs(mean-1/lambda) > 0.02 {
		t.Errorf("sample mean = %g, want about %g", mean, 1/lambda)
	}
}

func TestWaitingTimeReproducible(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		wa, _ := WaitingTime(a, 1.0)
		wb, _ := WaitingTime(b, 1.0)
		if wa != wb {
			t.Fatalf("draw %d differs for identical seeds", i)
		}
	}
}

func TestPickCategoryBoundary(t *testing.T) {
	cats := []Category{
		{Label: "one", Probability: 0.5, Damage: 0.1},
		{Label: "two", Probability: 0.5, Damage: 0.9},
	}

	// Inclusive comparison: u exactly on the boundary picks the first.
	if got := pickCategory(0.5, cats); got.Label != "one" {
		t.Errorf("u=0.5 picked %q, want \"one\"", got.Label)
	}
	if got := pickCategory(0.0, cats); got.Label != "one" {
		t.Errorf("u=0 picked %q, want \"one\"", got.Label)
	}
	if got := pickCategory(0.51, cats); got.Label != "two" {
		t.Errorf("u=0.51 picked %q, want \"two\"", got.Label)
	}
}

func TestPickCategoryShortfallFallback(t *testing.T) {
	// Probabilities sum to 0.9999 due to drift: a large u must still
	// resolve to the last category.
	cats := []Category{
		{Label: "a", Probability: 0.4999},
		{Label: "b", Probability: 0.5},
	}
	if got := pickCategory(0.99999, cats); got.Label != "b" {
		t.Errorf("fallback picked %q, want \"b\"", got.Label)
	}
}

func TestDrawCategoryEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := DrawCategory(rng, nil); ok {
		t.Error("empty category list should report ok=false")
	}
}
