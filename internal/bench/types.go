package bench

import (
	"fmt"
	"strings"

	"crossbench/internal/perfstat"
)

// Failure records one implementation whose measurement run exited
// non-zero. Failures are deferred: the batch keeps going and reports them
// all at the end.
type Failure struct {
	Scenario string
	Label    string
	Cmd      []string
	Code     int
}

func (f Failure) String() string {
	return fmt.Sprintf("bench failed: %s %s exit %d %s", f.Scenario, f.Label, f.Code, strings.Join(f.Cmd, " "))
}

// Result holds the measurements of one scenario. An implementation is
// present only if its run completed and exited zero; partial data from a
// failed run is never kept.
type Result struct {
	Scenario string
	// events maps implementation label to counter name to the aggregated
	// event perf reported for it.
	events map[string]map[string]perfstat.Event
	// labels preserves registry declaration order for the recorded
	// implementations.
	labels   []string
	Failures []Failure
}

// NewResult returns an empty result for one scenario.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		events:   make(map[string]map[string]perfstat.Event),
	}
}

// Record stores one counter event for an implementation. The first event
// for a label also fixes the label's position in iteration order.
func (r *Result) Record(label string, ev perfstat.Event) {
	m, ok := r.events[label]
	if !ok {
		m = make(map[string]perfstat.Event)
		r.events[label] = m
		r.labels = append(r.labels, label)
	}
	// Later records for the same counter overwrite earlier ones; perf
	// emits the aggregate, not raw samples.
	m[ev.Name] = ev
}

func (r *Result) drop(label string) {
	delete(r.events, label)
	for i, l := range r.labels {
		if l == label {
			r.labels = append(r.labels[:i], r.labels[i+1:]...)
			break
		}
	}
}

// Labels returns the recorded implementation labels in registry
// declaration order.
func (r *Result) Labels() []string {
	return r.labels
}

// Events returns the counter events recorded for one implementation,
// keyed by plain counter name.
func (r *Result) Events(label string) map[string]perfstat.Event {
	return r.events[label]
}

// Empty reports whether no implementation recorded any measurements.
func (r *Result) Empty() bool {
	return len(r.events) == 0
}
