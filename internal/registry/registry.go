package registry

// Implementation describes one benchmarked binary: how to build it, where
// the built binary lives, and which scenarios it can run.
type Implementation struct {
	// Label identifies the implementation in logs, scores and charts.
	Label string
	// Binary is the path of the built binary, relative to the build root.
	Binary string
	// Build holds the build command lines, run in declaration order.
	Build [][]string
	// scenarios is the set of scenario names this implementation supports.
	scenarios map[string]bool
}

// NewImplementation constructs an implementation with the given supported
// scenario names.
func NewImplementation(label, binary string, build [][]string, scenarios []string) Implementation {
	im := Implementation{
		Label:     label,
		Binary:    binary,
		Build:     build,
		scenarios: make(map[string]bool, len(scenarios)),
	}
	for _, s := range scenarios {
		im.scenarios[s] = true
	}
	return im
}

// Supports reports whether the implementation declares support for the
// named scenario.
func (im Implementation) Supports(scenario string) bool {
	return im.scenarios[scenario]
}

// Scenario is one named benchmark case: fixed arguments applied uniformly
// across implementations, plus the name of the report artifact.
type Scenario struct {
	Name     string
	Args     []string
	Artifact string
}

// Registry holds the implementations and scenarios loaded from config.
// It is populated once at startup and read-only afterwards. Iteration
// order always follows declaration order.
type Registry struct {
	impls     []Implementation
	scenarios []Scenario
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// AddImplementation appends an implementation in declaration order.
func (r *Registry) AddImplementation(im Implementation) {
	r.impls = append(r.impls, im)
}

// AddScenario appends a scenario in declaration order.
func (r *Registry) AddScenario(s Scenario) {
	r.scenarios = append(r.scenarios, s)
}

// Implementations returns all implementations in declaration order.
func (r *Registry) Implementations() []Implementation {
	return r.impls
}

// Scenarios returns all scenarios in declaration order.
func (r *Registry) Scenarios() []Scenario {
	return r.scenarios
}

// Scenario looks up a scenario by name.
func (r *Registry) Scenario(name string) (Scenario, bool) {
	for _, s := range r.scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Supporting returns, in declaration order, the implementations that
// declare support for the named scenario.
func (r *Registry) Supporting(scenario string) []Implementation {
	var out []Implementation
	for _, im := range r.impls {
		if im.Supports(scenario) {
			out = append(out, im)
		}
	}
	return out
}
