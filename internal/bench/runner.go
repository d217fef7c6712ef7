// Package bench drives the measurement phase: one perf stat run per
// (scenario, implementation) pair, strictly serialized so parallel
// execution cannot contend on the hardware counters.
package bench

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"crossbench/internal/perfstat"
	"crossbench/internal/registry"
	"crossbench/internal/workdir"
)

// execCommand allows tests to substitute the spawned profiler process.
var execCommand = exec.CommandContext

// Runner measures scenarios across the registered implementations.
type Runner struct {
	// Profiler is the profiler executable, normally "perf".
	Profiler string
	// BuildRoot is the directory binaries are built into and run from.
	BuildRoot string
	// Repeat is the number of executions perf aggregates per run.
	Repeat int
	// Timeout bounds a single measurement run. Zero means no bound, which
	// matches perf's own behavior: a hung target blocks the batch.
	Timeout time.Duration
}

// NewRunner returns a runner with the default profiler and repeat count.
func NewRunner(buildRoot string) *Runner {
	return &Runner{Profiler: "perf", BuildRoot: buildRoot, Repeat: perfstat.DefaultRepeat}
}

// Run measures one scenario against every implementation that supports
// it, in declaration order, one process at a time. A non-zero profiler
// exit, or a zero-exit run that did not report every requested counter,
// discards that implementation's data and is recorded as a deferred
// failure; the remaining implementations still run. A scenario no
// implementation supports yields an empty result, not an error.
func (r *Runner) Run(ctx context.Context, scenario registry.Scenario, reg *registry.Registry) (*Result, error) {
	restore, err := workdir.Enter(r.BuildRoot)
	if err != nil {
		return nil, err
	}
	defer restore()

	result := NewResult(scenario.Name)
	for _, im := range reg.Supporting(scenario.Name) {
		r.measure(ctx, scenario, im, result)
	}
	return result, nil
}

func (r *Runner) measure(ctx context.Context, scenario registry.Scenario, im registry.Implementation, result *Result) {
	slog.Info("benchmarking", "scenario", scenario.Name, "implementation", im.Label)

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := perfstat.Args(im.Binary, scenario.Args, r.Repeat)
	cmd := execCommand(runCtx, r.Profiler, args...)
	argv := append([]string{r.Profiler}, args...)
	slog.Info("cmd", "args", strings.Join(argv, " "))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		result.Failures = append(result.Failures, Failure{Scenario: scenario.Name, Label: im.Label, Cmd: argv, Code: 1})
		slog.Error("bench failed", "scenario", scenario.Name, "implementation", im.Label, "error", err)
		return
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		result.Failures = append(result.Failures, Failure{Scenario: scenario.Name, Label: im.Label, Cmd: argv, Code: 1})
		slog.Error("bench failed", "scenario", scenario.Name, "implementation", im.Label, "error", err)
		return
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ev, err := perfstat.ParseEvent(line)
		if err != nil {
			// Non-record lines are allowed by the profiler contract.
			slog.Debug("skipping profiler line", "line", line, "error", err)
			continue
		}
		result.Record(im.Label, ev)
		slog.Debug(line)
	}

	if err := cmd.Wait(); err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			code = exitErr.ExitCode()
		}
		// A run either fully reports or does not count at all.
		result.drop(im.Label)
		result.Failures = append(result.Failures, Failure{Scenario: scenario.Name, Label: im.Label, Cmd: argv, Code: code})
		slog.Error("bench failed", "scenario", scenario.Name, "implementation", im.Label, "exit", code, "cmd", strings.Join(argv, " "))
		return
	}

	if err := scanner.Err(); err != nil {
		slog.Error("profiler output read error", "scenario", scenario.Name, "implementation", im.Label, "error", err)
	}

	// A zero-exit run must still report every requested counter. perf
	// reports an unsupported counter with a non-numeric value, which the
	// parser rejects, and a raw 0.0 would score as the best possible
	// value under the inverse scale.
	var missing []string
	for _, name := range perfstat.Events {
		if _, ok := result.Events(im.Label)[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		result.drop(im.Label)
		result.Failures = append(result.Failures, Failure{Scenario: scenario.Name, Label: im.Label, Cmd: argv, Code: 1})
		slog.Error("bench incomplete", "scenario", scenario.Name, "implementation", im.Label, "missing", strings.Join(missing, ","))
	}
}
