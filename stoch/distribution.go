package stoch

import "github.com/smps-go/smps/kinds"

// Uniform is the continuous uniform distribution on [A, B].
type Uniform struct{ A, B float64 }

// Normal is the normal distribution with the given mean and variance
// (not standard deviation — callers wanting the latter take
// math.Sqrt(Variance) themselves).
type Normal struct{ Mean, Variance float64 }

// Gamma is the gamma distribution in (shape, scale) parameterization.
type Gamma struct{ Shape, Scale float64 }

// Beta is the beta distribution with shape parameters Alpha and Beta.
type Beta struct{ Alpha, Beta float64 }

// LogNormal is the log-normal distribution; Mean and Variance describe
// the underlying normal, not the log-normal's own moments.
type LogNormal struct{ Mean, Variance float64 }

// Outcome is one (value, probability) pair of a Discrete distribution.
type Outcome struct {
	Value       float64
	Probability float64
}

// Discrete is a finite-support distribution assembled from accumulated
// INDEP outcome/probability pairs.
type Discrete struct {
	Outcomes []Outcome
}

// Distribution is a tagged variant over the six families an INDEP
// section may declare. Exactly one of the pointer fields matching
// Family is populated; this module never samples from a Distribution,
// it only stores the parameters the STOCH file carries.
type Distribution struct {
	Family kinds.DistFamily

	Uniform   *Uniform
	Normal    *Normal
	Gamma     *Gamma
	Beta      *Beta
	LogNormal *LogNormal
	Discrete  *Discrete
}
