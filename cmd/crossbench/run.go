package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crossbench/internal/bench"
	"crossbench/internal/builder"
	"crossbench/internal/config"
	"crossbench/internal/history"
	"crossbench/internal/perfstat"
	"crossbench/internal/registry"
	"crossbench/internal/report"
	"crossbench/internal/score"
	"crossbench/internal/ui"
)

var (
	runSave bool
	runDump bool
)

// errBenchFailed marks a batch where at least one measurement run exited
// non-zero. It is raised only after every scenario has been attempted.
var errBenchFailed = errors.New("some of the benchmarks failed")

// scenarioRunner lets tests substitute the measurement phase.
type scenarioRunner interface {
	Run(ctx context.Context, scenario registry.Scenario, reg *registry.Registry) (*bench.Result, error)
}

// Mockable dependencies for tests.
var (
	buildFunc     = builder.Build
	newRunnerFunc = func() scenarioRunner {
		r := bench.NewRunner(viper.GetString("build_root"))
		r.Profiler = viper.GetString("profiler")
		r.Repeat = viper.GetInt("repeat")
		r.Timeout = config.BenchTimeout()
		return r
	}
	newStoreFunc = func(path string) (history.Store, error) {
		return history.NewFileStore(path)
	}
)

var runCmd = &cobra.Command{
	Use:   "run [scenarios...]",
	Short: "Build all implementations and benchmark the given scenarios",
	Long: `Builds every configured implementation, then benchmarks the named
scenarios (all configured scenarios when none are given) under perf stat
and renders one ranked chart per scenario.

The process exits 0 only if every build and every measurement run
succeeded. A build failure aborts immediately with the build's exit code;
measurement failures are deferred and exit 1 after all scenarios ran.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runSave, "save", false, "Save per-scenario scores to the history file")
	runCmd.Flags().BoolVar(&runDump, "dump", false, "Dump the raw counter events as JSON")
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := config.Validate(); err != nil {
		return err
	}
	reg, err := registry.FromViper()
	if err != nil {
		return err
	}
	scenarios, err := selectScenarios(reg, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := buildFunc(ctx, reg, viper.GetString("build_root")); err != nil {
		return err
	}

	runner := newRunnerFunc()
	emitter := &report.Emitter{Dir: viper.GetString("reports_dir")}
	record := history.Record{Timestamp: time.Now(), Scenarios: make(map[string][]score.Entry)}
	raw := make(map[string]map[string]map[string]perfstat.Event)

	var failures []bench.Failure
	for _, scenario := range scenarios {
		result, err := runner.Run(ctx, scenario, reg)
		if err != nil {
			return err
		}
		failures = append(failures, result.Failures...)

		if result.Empty() {
			continue
		}
		entries := score.Rank(result)
		emitter.Title = scenario.Name
		if err := emitter.Emit(entries, scenario.Artifact); err != nil {
			return err
		}
		ui.PrintRanking(cmd.OutOrStdout(), scenario.Name, entries)
		record.Scenarios[scenario.Name] = entries

		if runDump {
			events := make(map[string]map[string]perfstat.Event)
			for _, label := range result.Labels() {
				events[label] = result.Events(label)
			}
			raw[scenario.Name] = events
		}
	}

	if runDump {
		pretty, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	}

	if runSave && len(record.Scenarios) > 0 {
		store, err := newStoreFunc(viper.GetString("history_file"))
		if err != nil {
			return err
		}
		if err := store.Save(record); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scores saved to %s\n", viper.GetString("history_file"))
	}

	if len(failures) > 0 {
		lines := make([]string, len(failures))
		for i, f := range failures {
			lines[i] = f.String()
		}
		ui.PrintFailures(cmd.OutOrStdout(), lines)
		return errBenchFailed
	}
	return nil
}

// selectScenarios resolves the scenario names given on the command line,
// defaulting to every configured scenario. Unknown names are an error.
func selectScenarios(reg *registry.Registry, names []string) ([]registry.Scenario, error) {
	if len(names) == 0 {
		return reg.Scenarios(), nil
	}
	out := make([]registry.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := reg.Scenario(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}
