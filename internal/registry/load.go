package registry

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/viper"
)

// implEntry mirrors one entry under the "implementations" config key.
// Build command lines are written as plain strings in the config and
// split into argv here, so the rest of the code never shells out.
type implEntry struct {
	Label     string   `mapstructure:"label"`
	Binary    string   `mapstructure:"binary"`
	Build     []string `mapstructure:"build"`
	Scenarios []string `mapstructure:"scenarios"`
}

// scenarioEntry mirrors one entry under the "scenarios" config key.
type scenarioEntry struct {
	Name     string   `mapstructure:"name"`
	Args     []string `mapstructure:"args"`
	Artifact string   `mapstructure:"artifact"`
}

// FromViper builds a validated registry from the loaded viper config.
// All validation problems are collected and reported in one error so a
// broken config surfaces completely on the first run.
func FromViper() (*Registry, error) {
	var impls []implEntry
	if err := viper.UnmarshalKey("implementations", &impls); err != nil {
		return nil, fmt.Errorf("invalid implementations config: %w", err)
	}
	var scenarios []scenarioEntry
	if err := viper.UnmarshalKey("scenarios", &scenarios); err != nil {
		return nil, fmt.Errorf("invalid scenarios config: %w", err)
	}

	var problems []string
	reg := New()

	known := make(map[string]bool)
	for i, s := range scenarios {
		if s.Name == "" {
			problems = append(problems, fmt.Sprintf("scenarios[%d]: name is required", i))
			continue
		}
		if known[s.Name] {
			problems = append(problems, fmt.Sprintf("scenarios[%d]: duplicate name %q", i, s.Name))
			continue
		}
		known[s.Name] = true
		if s.Artifact == "" {
			s.Artifact = s.Name
		}
		reg.AddScenario(Scenario{Name: s.Name, Args: s.Args, Artifact: s.Artifact})
	}

	seen := make(map[string]bool)
	for i, e := range impls {
		if e.Label == "" {
			problems = append(problems, fmt.Sprintf("implementations[%d]: label is required", i))
			continue
		}
		if seen[e.Label] {
			problems = append(problems, fmt.Sprintf("implementations[%d]: duplicate label %q", i, e.Label))
			continue
		}
		seen[e.Label] = true
		if e.Binary == "" {
			problems = append(problems, fmt.Sprintf("implementation %q: binary is required", e.Label))
		}
		if len(e.Build) == 0 {
			problems = append(problems, fmt.Sprintf("implementation %q: at least one build command is required", e.Label))
		}

		var build [][]string
		for _, line := range e.Build {
			argv, err := shellquote.Split(line)
			if err != nil {
				problems = append(problems, fmt.Sprintf("implementation %q: build command %q: %v", e.Label, line, err))
				continue
			}
			if len(argv) == 0 {
				problems = append(problems, fmt.Sprintf("implementation %q: empty build command", e.Label))
				continue
			}
			build = append(build, argv)
		}
		var supported []string
		for _, name := range e.Scenarios {
			if !known[name] {
				problems = append(problems, fmt.Sprintf("implementation %q: unknown scenario %q", e.Label, name))
				continue
			}
			supported = append(supported, name)
		}
		reg.AddImplementation(NewImplementation(e.Label, e.Binary, build, supported))
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("config validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return reg, nil
}
