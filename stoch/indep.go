package stoch

import "github.com/smps-go/smps/kinds"

// Key identifies one randomized matrix cell: a (variable, constraint)
// pair. The objective row's name is a legal Constraint value, so
// randomized objective coefficients use the same key shape.
type Key struct {
	Variable   string
	Constraint string
}

// Indep is one INDEP section's accumulated state: a single
// distribution family and modification kind, applied across however
// many (variable, constraint) cells the section's data lines name.
type Indep struct {
	Family       kinds.DistFamily
	Modification kinds.Modification

	continuous map[Key]*Distribution
	discrete   map[Key][]Outcome
}

// NewIndep returns an empty Indep for the given family and
// modification.
func NewIndep(family kinds.DistFamily, modification kinds.Modification) *Indep {
	return &Indep{
		Family:       family,
		Modification: modification,
		continuous:   make(map[Key]*Distribution),
		discrete:     make(map[Key][]Outcome),
	}
}

// Add records one INDEP data line's two numeric fields against key,
// dispatching by i.Family per the family-to-parameter mapping. A
// DISCRETE entry accumulates an outcome; every other family replaces
// the stored distribution outright, so a later data line for the same
// key simply overwrites the earlier one.
func (i *Indep) Add(key Key, first, second float64) {
	switch i.Family {
	case kinds.DISCRETE:
		i.discrete[key] = append(i.discrete[key], Outcome{Value: first, Probability: second})
	case kinds.UNIFORM:
		i.continuous[key] = &Distribution{Family: kinds.UNIFORM, Uniform: &Uniform{A: first, B: second}}
	case kinds.NORMAL:
		i.continuous[key] = &Distribution{Family: kinds.NORMAL, Normal: &Normal{Mean: first, Variance: second}}
	case kinds.GAMMA:
		// Column order is (scale, shape); Gamma stores (shape, scale).
		i.continuous[key] = &Distribution{Family: kinds.GAMMA, Gamma: &Gamma{Shape: second, Scale: first}}
	case kinds.BETA:
		i.continuous[key] = &Distribution{Family: kinds.BETA, Beta: &Beta{Alpha: first, Beta: second}}
	case kinds.LOGNORM:
		i.continuous[key] = &Distribution{Family: kinds.LOGNORM, LogNormal: &LogNormal{Mean: first, Variance: second}}
	}
}

// Get returns the distribution stored for key: the continuous
// distribution directly, or, for a DISCRETE Indep, a freshly assembled
// finite-support Distribution from the outcomes accumulated so far.
func (i *Indep) Get(key Key) (*Distribution, bool) {
	if d, ok := i.continuous[key]; ok {
		return d, true
	}
	if outcomes, ok := i.discrete[key]; ok {
		return &Distribution{Family: kinds.DISCRETE, Discrete: &Discrete{Outcomes: outcomes}}, true
	}
	return nil, false
}

// IsFinite reports whether this Indep's family has finite support.
func (i *Indep) IsFinite() bool { return i.Family.IsFinite() }

// Len returns the number of distinct (variable, constraint) keys
// populated so far, across both the continuous and discrete maps.
func (i *Indep) Len() int { return len(i.continuous) + len(i.discrete) }
