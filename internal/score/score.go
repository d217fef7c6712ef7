// Package score combines the normalized per-metric series of one scenario
// into a single comparison score per implementation and orders the field.
package score

import (
	"fmt"
	"sort"
	"strings"

	"crossbench/internal/bench"
	"crossbench/internal/perfstat"
	"crossbench/internal/stats"
)

// primaryTiming is the counter whose raw value annotates each label.
const primaryTiming = "cpu-clock"

// Entry pairs an implementation label with its combined score. Entries
// only live for the duration of one report render; the history store
// keeps the plain label and score, not the display annotation.
type Entry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	// Display is the label annotated with the raw primary timing, used
	// on the chart axis and the console summary.
	Display string `json:"-"`
}

// Rank computes one combined score per implementation recorded in the
// scenario result and returns the entries sorted by score descending.
// Every contributing metric weighs equally: the combined score is the
// arithmetic mean over the metrics actually present (the fixed counter
// set plus the stability metric). Ties keep registry declaration order.
func Rank(result *bench.Result) []Entry {
	labels := result.Labels()
	if len(labels) == 0 {
		return nil
	}

	// One raw series per counter, implementation order fixed.
	series := make([][]float64, 0, len(perfstat.Events)+1)
	for _, name := range perfstat.Events {
		raw := make([]float64, len(labels))
		for i, label := range labels {
			raw[i] = result.Events(label)[name].Value
		}
		series = append(series, raw)
	}
	stability := make([]float64, len(labels))
	for i, label := range labels {
		stability[i] = stats.Stability(result.Events(label))
	}
	series = append(series, stability)

	total := make([]float64, len(labels))
	for _, raw := range series {
		for i, v := range stats.Normalize(raw) {
			total[i] += v
		}
	}

	entries := make([]Entry, len(labels))
	for i, label := range labels {
		entries[i] = Entry{
			Label:   label,
			Score:   total[i] / float64(len(series)),
			Display: annotate(label, result.Events(label)[primaryTiming]),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// annotate attaches the raw primary timing to the label so the chart
// shows absolute time next to the unit-less score.
func annotate(label string, timing perfstat.Event) string {
	if timing.Name == "" {
		return label
	}
	return fmt.Sprintf("%s (%.2f %s)", label, timing.Value, strings.TrimSpace(timing.Unit))
}
