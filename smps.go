// Package smps provides parsers for the SMPS (Stochastic Mathematical
// Programming System) file family: the CORE file (a deterministic
// linear or mixed-integer program in MPS syntax), the TIME file (stage
// assignment), and the STOCH file (scenario trees, independent random
// variables, and distribution blocks).
//
// Each file type has its own parser in a subpackage (core, smpstime,
// stoch); this package re-exports their constructors and principal
// types for callers that only need one of the three and don't want to
// import three paths.
//
// Example usage:
//
//	core, err := smps.ParseCore("testprob")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(core.ObjectiveName(), core.NumConstraints())
package smps

import (
	"github.com/smps-go/smps/core"
	"github.com/smps-go/smps/parser"
	"github.com/smps-go/smps/smpstime"
	"github.com/smps-go/smps/stoch"
)

// ParseCore resolves location against the CORE file extensions,
// parses it, and returns the populated parser.
func ParseCore(location string, opts ...parser.Option) (*core.Parser, error) {
	p, err := core.New(location, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseTime resolves location against the TIME file extensions, parses
// it, and returns the populated parser.
func ParseTime(location string, opts ...parser.Option) (*smpstime.Parser, error) {
	p, err := smpstime.New(location, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseStoch resolves location against the STOCH file extensions,
// parses it, and returns the populated parser.
func ParseStoch(location string, opts ...parser.Option) (*stoch.Parser, error) {
	p, err := stoch.New(location, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p, nil
}

// Re-export the per-file-type parser types and options for convenience.
type (
	CoreParser  = core.Parser
	TimeParser  = smpstime.Parser
	StochParser = stoch.Parser
	Option      = parser.Option
)

// Re-export the STOCH value types most callers need without reaching
// into the stoch subpackage directly.
type (
	Scenario     = stoch.Scenario
	Modification = stoch.Modification
	Indep        = stoch.Indep
	Distribution = stoch.Distribution
)

// WithFreeForm and WithLogger forward to the parser package's
// functional options, applicable to any of the three parsers above.
var (
	WithFreeForm = parser.WithFreeForm
	WithLogger   = parser.WithLogger
)
