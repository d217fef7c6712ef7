// Package perfstat wraps the perf(1) hardware performance-counter profiler.
// It builds the `perf stat` invocation for a benchmarked binary and parses
// the JSON event records perf emits, one per counter, on its stdout.
package perfstat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultRepeat is the number of executions perf aggregates per run.
const DefaultRepeat = 100

// Events is the fixed counter set requested on every run. The order is
// only cosmetic; perf reports each event as its own record.
var Events = []string{
	"cpu-clock",
	"task-clock",
	"cache-misses",
	"branch-misses",
	"context-switches",
	"instructions",
	"cycles",
}

// Args returns the perf stat argument vector wrapping the given binary and
// its scenario arguments for repeat aggregated executions.
func Args(binary string, args []string, repeat int) []string {
	if repeat <= 0 {
		repeat = DefaultRepeat
	}
	// The separator keeps perf from eating scenario arguments that start
	// with a dash.
	out := []string{
		"stat", "--sync", fmt.Sprintf("--repeat=%d", repeat), "--json-output",
		"-e", strings.Join(Events, ","),
		"--", binary,
	}
	return append(out, args...)
}

// Event is one aggregated counter record from a perf run.
type Event struct {
	// Name is the counter name with any modifier suffix (":u", ":k")
	// stripped, so callers look events up by plain counter name.
	Name string `json:"event"`
	// Value is the aggregated counter value.
	Value float64 `json:"counter-value"`
	// Unit is the counter's unit as reported by perf ("msec", "" for
	// plain counts).
	Unit string `json:"unit"`
	// Variance is perf's run-to-run variance for this counter across the
	// repeated executions.
	Variance float64 `json:"variance"`
}

// rawEvent mirrors the wire record. perf encodes counter-value as a
// numeric string.
type rawEvent struct {
	Event        string  `json:"event"`
	CounterValue string  `json:"counter-value"`
	Unit         string  `json:"unit"`
	Variance     float64 `json:"variance"`
}

// ParseEvent parses one line of perf's JSON output into an Event. Lines
// that are not valid event records return an error; per the profiler
// contract such lines are permitted and callers skip them.
func ParseEvent(line string) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Event{}, fmt.Errorf("not an event record: %w", err)
	}
	if raw.Event == "" {
		return Event{}, fmt.Errorf("event record missing event name")
	}
	value, err := strconv.ParseFloat(raw.CounterValue, 64)
	if err != nil {
		return Event{}, fmt.Errorf("event %s: bad counter-value %q: %w", raw.Event, raw.CounterValue, err)
	}
	name := raw.Event
	if i := strings.IndexByte(name, ':'); i != -1 {
		name = name[:i]
	}
	return Event{Name: name, Value: value, Unit: raw.Unit, Variance: raw.Variance}, nil
}
