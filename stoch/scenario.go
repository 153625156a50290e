package stoch

import "strings"

// rootSentinel is the scenario-tree root's reserved parent name. A
// SCENARIOS parent field is accepted in any case or quoting around it.
const rootSentinel = "ROOT"

// normalizeParent strips surrounding quotes and, if what remains is
// ROOT in any case, canonicalizes it to the sentinel; any other value
// passes through unchanged (an actual scenario name).
func normalizeParent(s string) string {
	s = strings.Trim(s, `'"`)
	if strings.EqualFold(s, rootSentinel) {
		return rootSentinel
	}
	return s
}

// Modification is one (constraint, variable, value) entry of a
// scenario's deviation from its parent.
type Modification struct {
	Constraint string
	Variable   string
	Value      float64
}

// Scenario is one node of the scenario tree.
type Scenario struct {
	Name         string
	Parent       string
	BranchPeriod string
	Probability  float64
	Modifications []Modification
}

// Registry is a parse-scoped scenario name→node map, owned by a single
// StochParser and never shared across parses.
type Registry struct {
	byName map[string]*Scenario
	order  []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Scenario)}
}

// Clear empties the registry, as required at the start of every parse.
func (r *Registry) Clear() {
	r.byName = make(map[string]*Scenario)
	r.order = nil
}

// Add registers s. It reports false (and does not register) if a
// scenario with this name already exists.
func (r *Registry) Add(s *Scenario) bool {
	if _, exists := r.byName[s.Name]; exists {
		return false
	}
	r.byName[s.Name] = s
	r.order = append(r.order, s.Name)
	return true
}

// Get looks up a scenario by name.
func (r *Registry) Get(name string) (*Scenario, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Len returns the number of registered scenarios.
func (r *Registry) Len() int { return len(r.order) }

// Scenarios returns every registered scenario in registration order.
func (r *Registry) Scenarios() []*Scenario {
	out := make([]*Scenario, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// ModificationsFromRoot composes s's local modifications with every
// ancestor's, later (more specific) values overriding earlier ones
// keyed by (constraint, variable).
func (r *Registry) ModificationsFromRoot(s *Scenario) []Modification {
	if s.Parent == rootSentinel {
		return append([]Modification(nil), s.Modifications...)
	}

	parent, ok := r.Get(s.Parent)
	var chain []Modification
	if ok {
		chain = r.ModificationsFromRoot(parent)
	}

	type key struct{ constraint, variable string }
	values := make(map[key]float64, len(chain)+len(s.Modifications))
	var keys []key

	apply := func(m Modification) {
		k := key{m.Constraint, m.Variable}
		if _, seen := values[k]; !seen {
			keys = append(keys, k)
		}
		values[k] = m.Value
	}
	for _, m := range chain {
		apply(m)
	}
	for _, m := range s.Modifications {
		apply(m)
	}

	merged := make([]Modification, len(keys))
	for i, k := range keys {
		merged[i] = Modification{Constraint: k.constraint, Variable: k.variable, Value: values[k]}
	}
	return merged
}
