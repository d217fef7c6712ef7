// Package stats derives the stability metric and normalizes raw counter
// series into the bounded comparison scale used for scoring.
package stats

import (
	"math"

	"crossbench/internal/perfstat"
)

// Floor and Ceiling bound the comparison scale every raw series is mapped
// into. Lower raw values (less time, fewer misses) map toward the ceiling.
const (
	Floor   = 0.1
	Ceiling = 1.0
)

// Stability approximates run-to-run instability of one implementation's
// run as a single scalar: the square root of the mean variance across all
// reported counters.
func Stability(events map[string]perfstat.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	var variance float64
	for _, ev := range events {
		variance += ev.Variance
	}
	variance /= float64(len(events))
	return math.Sqrt(variance)
}

// Normalize maps a raw metric series into [Floor, Ceiling] with an inverse
// linear scale: the minimum raw value scores Ceiling, the maximum scores
// Floor. Two degenerate series are handled explicitly rather than letting
// the division blow up:
//
//   - all values equal and zero: no signal to rank, everything scores Floor
//   - all values equal and non-zero: nothing is worse than anything else,
//     everything scores Ceiling
func Normalize(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	min, max := series[0], series[0]
	for _, v := range series[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	scaled := make([]float64, len(series))
	if min == max {
		fill := Ceiling
		if min == 0 {
			fill = Floor
		}
		for i := range scaled {
			scaled[i] = fill
		}
		return scaled
	}

	for i, v := range series {
		scaled[i] = 1.1 - (Floor + (v-min)*(Ceiling-Floor)/(max-min))
	}
	return scaled
}
