// Package optim sweeps controller gains over simulated runs to find the
// combination minimizing a scoring function.
package optim

import (
	"context"
	"math"
	"sync"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

// Candidate is one evaluated parameter combination.
type Candidate struct {
	Params map[string]float64
	Score  float64
	Err    error
}

// GridSearch enumerates the cartesian product of the parameter ranges.
type GridSearch struct {
	names  []string
	ranges [][]float64
}

func NewGridSearch(names []string, ranges [][]float64) *GridSearch {
	return &GridSearch{names: names, ranges: ranges}
}

// Search evaluates every combination concurrently and returns the best one.
// build constructs a fresh engine for a combination, score reduces its run
// history to a cost (lower is better).
func (g *GridSearch) Search(
	ctx context.Context,
	steps int,
	dt float64,
	build func(params map[string]float64) (*sim.Engine, error),
	score func(history []sim.Snapshot) float64,
) (Candidate, error) {
	combos := g.enumerate(0, map[string]float64{})

	results := make([]Candidate, len(combos))
	var wg sync.WaitGroup
	for i, params := range combos {
		wg.Add(1)
		go func(idx int, p map[string]float64) {
			defer wg.Done()
			results[idx] = evaluate(ctx, steps, dt, p, build, score)
		}(i, params)
	}
	wg.Wait()

	best := Candidate{Score: math.Inf(1)}
	for _, c := range results {
		if c.Err != nil {
			return Candidate{}, c.Err
		}
		if c.Score < best.Score {
			best = c
		}
	}
	return best, nil
}

func evaluate(
	ctx context.Context,
	steps int,
	dt float64,
	params map[string]float64,
	build func(map[string]float64) (*sim.Engine, error),
	score func([]sim.Snapshot) float64,
) Candidate {
	engine, err := build(params)
	if err != nil {
		return Candidate{Params: params, Err: err}
	}
	history, err := engine.Run(ctx, steps, dt)
	if err != nil {
		return Candidate{Params: params, Err: err}
	}
	return Candidate{Params: params, Score: score(history)}
}

func (g *GridSearch) enumerate(depth int, current map[string]float64) []map[string]float64 {
	if depth == len(g.names) {
		combo := make(map[string]float64, len(current))
		for k, v := range current {
			combo[k] = v
		}
		return []map[string]float64{combo}
	}

	var out []map[string]float64
	for _, val := range g.ranges[depth] {
		current[g.names[depth]] = val
		out = append(out, g.enumerate(depth+1, current)...)
	}
	delete(current, g.names[depth])
	return out
}

// OxygenTrackingError scores a run by the mean squared deviation of the
// oxygen concentration from the target.
func OxygenTrackingError(target float64) func([]sim.Snapshot) float64 {
	return func(history []sim.Snapshot) float64 {
		if len(history) == 0 {
			return math.Inf(1)
		}
		sum := 0.0
		for _, snap := range history {
			e := snap.FuelCell.OxygenConcentration - target
			sum += e * e
		}
		return sum / float64(len(history))
	}
}
