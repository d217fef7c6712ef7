package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossbench/internal/bench"
	"crossbench/internal/builder"
	"crossbench/internal/history"
	"crossbench/internal/perfstat"
	"crossbench/internal/registry"
)

type mockRunner struct {
	results map[string]*bench.Result
	calls   []string
}

func (m *mockRunner) Run(ctx context.Context, scenario registry.Scenario, reg *registry.Registry) (*bench.Result, error) {
	m.calls = append(m.calls, scenario.Name)
	if r, ok := m.results[scenario.Name]; ok {
		return r, nil
	}
	return bench.NewResult(scenario.Name), nil
}

type mockStore struct {
	saved []history.Record
}

func (m *mockStore) Save(rec history.Record) error {
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockStore) LoadAll() ([]history.Record, error) { return m.saved, nil }

// setupRunTest wires viper and the mockable dependencies for one test and
// restores everything afterwards.
func setupRunTest(t *testing.T, runner *mockRunner, store *mockStore, buildErr error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("build_root", t.TempDir())
	viper.Set("reports_dir", filepath.Join(t.TempDir(), "results"))
	viper.Set("profiler", "perf")
	viper.Set("repeat", 100)
	viper.Set("history_file", filepath.Join(t.TempDir(), "history.json"))
	viper.Set("scenarios", []map[string]any{
		{"name": "verify", "args": []string{"verify", "f.cdt"}, "artifact": "verify-draft"},
	})
	viper.Set("implementations", []map[string]any{
		{"label": "A", "binary": "bin/a", "scenarios": []string{"verify"}, "build": []string{"true"}},
		{"label": "B", "binary": "bin/b", "scenarios": []string{"verify"}, "build": []string{"true"}},
	})

	origBuild, origRunner, origStore := buildFunc, newRunnerFunc, newStoreFunc
	t.Cleanup(func() {
		buildFunc, newRunnerFunc, newStoreFunc = origBuild, origRunner, origStore
		runSave, runDump = false, false
	})
	buildFunc = func(ctx context.Context, reg *registry.Registry, root string) error {
		return buildErr
	}
	newRunnerFunc = func() scenarioRunner { return runner }
	newStoreFunc = func(path string) (history.Store, error) { return store, nil }
}

// fullResult builds a scenario result where every listed implementation
// reports the complete counter set.
func fullResult(scenario string, timings map[string]float64, order ...string) *bench.Result {
	result := bench.NewResult(scenario)
	for _, label := range order {
		for _, name := range perfstat.Events {
			ev := perfstat.Event{Name: name, Value: 50}
			if name == "cpu-clock" {
				ev.Value = timings[label]
				ev.Unit = "msec"
			}
			result.Record(label, ev)
		}
	}
	return result
}

func TestRunCmd_BuildFailureStopsMeasurements(t *testing.T) {
	runner := &mockRunner{}
	setupRunTest(t, runner, &mockStore{}, &builder.ExitError{Label: "A", Code: 3})

	cmd := runCmd
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))

	err := runRun(cmd, nil)
	require.Error(t, err)

	var exitErr *builder.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	// Stop-the-world: no measurement ran for any implementation.
	assert.Empty(t, runner.calls)
}

func TestRunCmd_DeferredFailureStillReportsSurvivor(t *testing.T) {
	result := fullResult("verify", map[string]float64{"B": 20}, "B")
	result.Failures = append(result.Failures, bench.Failure{Scenario: "verify", Label: "A", Code: 1})
	runner := &mockRunner{results: map[string]*bench.Result{"verify": result}}
	setupRunTest(t, runner, &mockStore{}, nil)

	buf := new(bytes.Buffer)
	cmd := runCmd
	cmd.SetContext(context.Background())
	cmd.SetOut(buf)

	err := runRun(cmd, nil)
	// The surviving implementation is reported, the batch still fails.
	require.ErrorIs(t, err, errBenchFailed)
	assert.Contains(t, buf.String(), "B (20.00 msec)")
	assert.Contains(t, buf.String(), "some of the benchmarks failed")
	assert.FileExists(t, filepath.Join(viper.GetString("reports_dir"), "verify-draft.svg"))
}

func TestRunCmd_SaveWritesHistory(t *testing.T) {
	result := fullResult("verify", map[string]float64{"A": 10, "B": 20}, "A", "B")
	runner := &mockRunner{results: map[string]*bench.Result{"verify": result}}
	store := &mockStore{}
	setupRunTest(t, runner, store, nil)
	runSave = true

	cmd := runCmd
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))

	require.NoError(t, runRun(cmd, nil))
	require.Len(t, store.saved, 1)
	entries := store.saved[0].Scenarios["verify"]
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Label)
}

func TestRunCmd_DumpPrintsRawEvents(t *testing.T) {
	result := fullResult("verify", map[string]float64{"A": 10}, "A")
	runner := &mockRunner{results: map[string]*bench.Result{"verify": result}}
	setupRunTest(t, runner, &mockStore{}, nil)
	runDump = true

	buf := new(bytes.Buffer)
	cmd := runCmd
	cmd.SetContext(context.Background())
	cmd.SetOut(buf)

	require.NoError(t, runRun(cmd, nil))
	assert.Contains(t, buf.String(), `"cpu-clock"`)
	assert.Contains(t, buf.String(), `"counter-value": 10`)
}

func TestRunCmd_UnknownScenario(t *testing.T) {
	setupRunTest(t, &mockRunner{}, &mockStore{}, nil)

	cmd := runCmd
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))

	err := runRun(cmd, []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "nope"`)
}

func TestSelectScenarios_DefaultsToAll(t *testing.T) {
	reg := registry.New()
	reg.AddScenario(registry.Scenario{Name: "a"})
	reg.AddScenario(registry.Scenario{Name: "b"})

	scenarios, err := selectScenarios(reg, nil)
	require.NoError(t, err)
	assert.Len(t, scenarios, 2)

	scenarios, err = selectScenarios(reg, []string{"b"})
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "b", scenarios[0].Name)
}
