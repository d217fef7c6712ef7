package history

import (
	"fmt"
	"sort"
)

// Comparison is the score movement of one implementation between two runs
// of the same scenario.
type Comparison struct {
	Scenario string
	Label    string
	Prev     float64
	Curr     float64
	// DeltaPct is the percentage change of the score; positive means the
	// implementation ranked better in the current run.
	DeltaPct float64
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s/%s: %+.2f%%", c.Scenario, c.Label, c.DeltaPct)
}

// Compare matches implementations present in both records, scenario by
// scenario. Implementations new to the current run are skipped; only
// pairs that can be compared are returned.
func Compare(prev, curr Record) []Comparison {
	scenarios := make([]string, 0, len(curr.Scenarios))
	for name := range curr.Scenarios {
		scenarios = append(scenarios, name)
	}
	sort.Strings(scenarios)

	var comparisons []Comparison
	for _, scenario := range scenarios {
		entries := curr.Scenarios[scenario]
		prevEntries, ok := prev.Scenarios[scenario]
		if !ok {
			continue
		}
		prevMap := make(map[string]float64, len(prevEntries))
		for _, e := range prevEntries {
			prevMap[e.Label] = e.Score
		}
		for _, e := range entries {
			p, ok := prevMap[e.Label]
			if !ok {
				continue
			}
			c := Comparison{Scenario: scenario, Label: e.Label, Prev: p, Curr: e.Score}
			if p != 0 {
				c.DeltaPct = (e.Score - p) / p * 100
			}
			comparisons = append(comparisons, c)
		}
	}
	return comparisons
}
