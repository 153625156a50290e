// Package core implements the CORE (MPS) file parser: ROWS, COLUMNS,
// RHS, BOUNDS, and RANGES, producing the sparse constraint matrix, the
// objective vector, and the variable/bound/type vectors a downstream
// solver needs.
package core

import (
	"math"
	"strings"

	"github.com/smps-go/smps/dataline"
	"github.com/smps-go/smps/kinds"
	"github.com/smps-go/smps/parser"
	"github.com/smps-go/smps/smpserr"
)

// File extensions accepted for a CORE file, in resolution order.
var fileExtensions = []string{".mps", ".MPS", ".cor", ".COR", ".core", ".CORE"}

const (
	sectionNAME    = "NAME"
	sectionROWS    = "ROWS"
	sectionCOLUMNS = "COLUMNS"
	sectionRHS     = "RHS"
	sectionBOUNDS  = "BOUNDS"
	sectionRANGES  = "RANGES"
)

var sectionOrder = []string{sectionNAME, sectionROWS, sectionCOLUMNS, sectionRHS, sectionBOUNDS, sectionRANGES}

// element is one nonzero of the constraint matrix, recorded in the
// order COLUMNS presents it.
type element struct {
	constraint string
	variable   string
	value      float64
}

// objTerm is one (variable, coefficient) pair of the objective row.
type objTerm struct {
	variable string
	value    float64
}

// rangeEntry is the derived (sense, rhs) pair for a ranged constraint's
// synthetic second row.
type rangeEntry struct {
	sense kinds.Sense
	rhs   float64
}

// Parser parses a CORE file.
type Parser struct {
	*parser.Base

	constraintNames  []string
	constraintSenses []kinds.Sense
	constrIdx        map[string]int

	objectiveName string
	objCoeffs     []objTerm

	variableNames []string
	variableTypes []kinds.VarType
	varIdx        map[string]int
	intMode       bool

	lower           []float64
	upper           []float64
	boundsAllocated bool

	rhs          []float64
	rhsAllocated bool

	elements []element

	ranges      map[string]rangeEntry
	rangesOrder []string

	matrix *Matrix
}

// New resolves location (appending .mps/.cor/.core as needed) and
// returns a Parser ready to have Parse called on it.
func New(location string, opts ...parser.Option) (*Parser, error) {
	base, err := parser.NewBase(location, fileExtensions, opts...)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		Base:      base,
		constrIdx: make(map[string]int),
		varIdx:    make(map[string]int),
		ranges:    make(map[string]rangeEntry),
	}

	steps := map[string]parser.Handler{
		sectionNAME:    p.processName,
		sectionROWS:    p.processRows,
		sectionCOLUMNS: p.processColumns,
		sectionRHS:     p.processRHS,
		sectionBOUNDS:  p.processBounds,
		sectionRANGES:  p.processRanges,
	}
	contexts := map[string]dataline.Context{
		sectionNAME:    {Indicator: -1, FirstName: -1, SecondName: -1, FirstNumber: -1, ThirdName: -1, SecondNumber: -1},
		sectionROWS:    {Indicator: 0, FirstName: 1, SecondName: -1, FirstNumber: -1, ThirdName: -1, SecondNumber: -1},
		sectionCOLUMNS: {Indicator: -1, FirstName: 0, SecondName: 1, FirstNumber: 2, ThirdName: 3, SecondNumber: 4},
		sectionRHS:     {Indicator: -1, FirstName: -1, SecondName: 0, FirstNumber: 1, ThirdName: 2, SecondNumber: 3},
		sectionBOUNDS:  {Indicator: 0, FirstName: -1, SecondName: 1, FirstNumber: 2, ThirdName: -1, SecondNumber: -1},
		sectionRANGES:  {Indicator: -1, FirstName: -1, SecondName: 0, FirstNumber: 1, ThirdName: -1, SecondNumber: -1},
	}
	p.Init(sectionOrder, steps, contexts)

	return p, nil
}

func (p *Parser) processName(line dataline.Line) error {
	if line.HasSecondHeaderWord() {
		p.SetName(line.SecondHeaderWord())
	} else {
		p.Warnf("core file has no value for the NAME field")
	}
	return nil
}

func (p *Parser) processRows(line dataline.Line) error {
	indicator := line.Indicator()

	if indicator == "N" {
		if p.objectiveName == "" {
			p.objectiveName = line.FirstName()
		} else {
			p.Logger().Debugf("ignoring additional objective row %q", line.FirstName())
		}
		return nil
	}

	sense, ok := kinds.ParseSense(indicator)
	if !ok {
		return smpserr.NewValueError("unrecognized ROWS indicator %q", indicator)
	}

	name := line.FirstName()
	if _, exists := p.constrIdx[name]; exists {
		p.Warnf("duplicate constraint name %q - ignored", name)
		return nil
	}

	p.constrIdx[name] = len(p.constraintNames)
	p.constraintNames = append(p.constraintNames, name)
	p.constraintSenses = append(p.constraintSenses, sense)
	return nil
}

func (p *Parser) processColumns(line dataline.Line) error {
	if strings.Contains(strings.ToUpper(line.SecondName()), "MARKER") {
		switch line.ThirdName() {
		case "INTORG":
			p.intMode = true
		case "INTEND":
			p.intMode = false
		default:
			p.Logger().Debugf("unrecognized MARKER kind %q", line.ThirdName())
		}
		return nil
	}

	varName := line.FirstName()
	if _, exists := p.varIdx[varName]; !exists {
		typ := kinds.Continuous
		if p.intMode {
			typ = kinds.Integer
		}
		p.varIdx[varName] = len(p.variableNames)
		p.variableNames = append(p.variableNames, varName)
		p.variableTypes = append(p.variableTypes, typ)
	}

	value, err := smpserr.RequireNumber(line.FirstNumber(), "COLUMNS entry for variable %q is missing a numeric value", varName)
	if err != nil {
		return err
	}
	p.addElement(line.SecondName(), varName, value)
	if line.HasThirdName() && line.HasSecondNumber() {
		p.addElement(line.ThirdName(), varName, line.SecondNumber())
	}
	return nil
}

// addElement routes a (constraint, variable, value) triple to the
// objective, the coefficient list, or the bit bucket, per the COLUMNS
// dispatch rule.
func (p *Parser) addElement(constr, variable string, value float64) {
	if p.objectiveName != "" && constr == p.objectiveName {
		p.objCoeffs = append(p.objCoeffs, objTerm{variable: variable, value: value})
		return
	}
	if _, ok := p.constrIdx[constr]; ok {
		p.elements = append(p.elements, element{constraint: constr, variable: variable, value: value})
		return
	}
	p.Logger().Infof("constraint %q is not understood, and skipped", constr)
}

func (p *Parser) processRHS(line dataline.Line) error {
	p.ensureRHS()

	value, err := smpserr.RequireNumber(line.FirstNumber(), "RHS entry for %q is missing a numeric value", line.SecondName())
	if err != nil {
		return err
	}
	p.setRHS(line.SecondName(), value)
	if line.HasThirdName() && line.HasSecondNumber() {
		p.setRHS(line.ThirdName(), line.SecondNumber())
	}
	return nil
}

func (p *Parser) ensureRHS() {
	if p.rhsAllocated {
		return
	}
	p.rhs = make([]float64, len(p.constraintNames))
	p.rhsAllocated = true
}

func (p *Parser) setRHS(constr string, value float64) {
	idx, ok := p.constrIdx[constr]
	if !ok {
		p.Warnf("RHS references unknown constraint %q - ignored", constr)
		return
	}
	p.rhs[idx] = value
}

func (p *Parser) ensureBounds() {
	if p.boundsAllocated {
		return
	}
	p.lower = make([]float64, len(p.variableNames))
	p.upper = make([]float64, len(p.variableNames))
	for i := range p.upper {
		p.upper[i] = math.Inf(1)
	}
	p.boundsAllocated = true
}

func (p *Parser) processBounds(line dataline.Line) error {
	p.ensureBounds()

	btype, ok := kinds.ParseBoundType(line.Indicator())
	if !ok {
		return smpserr.NewValueError("unrecognized BOUNDS type %q", line.Indicator())
	}

	varName := line.SecondName()
	idx, ok := p.varIdx[varName]
	if !ok {
		p.Warnf("BOUNDS references unknown variable %q - ignored", varName)
		return nil
	}

	// FR, MI, PL, and BV never consume the numeric field, so it is only
	// validated for the bound types that actually use it.
	requireB := func() (float64, error) {
		return smpserr.RequireNumber(line.FirstNumber(), "BOUNDS %s entry for %q is missing a numeric value", btype, varName)
	}

	switch btype {
	case kinds.LO:
		b, err := requireB()
		if err != nil {
			return err
		}
		p.lower[idx] = b
	case kinds.UP:
		b, err := requireB()
		if err != nil {
			return err
		}
		p.upper[idx] = b
	case kinds.FX:
		b, err := requireB()
		if err != nil {
			return err
		}
		p.lower[idx] = b
		p.upper[idx] = b
	case kinds.FR:
		p.lower[idx] = math.Inf(-1)
		p.upper[idx] = math.Inf(1)
	case kinds.MI:
		p.lower[idx] = math.Inf(-1)
	case kinds.PL:
		p.upper[idx] = math.Inf(1)
	case kinds.BV:
		p.lower[idx] = 0
		p.upper[idx] = 1
		p.variableTypes[idx] = kinds.Binary
	case kinds.LI:
		b, err := requireB()
		if err != nil {
			return err
		}
		p.lower[idx] = b
		p.variableTypes[idx] = kinds.Integer
	case kinds.UI:
		b, err := requireB()
		if err != nil {
			return err
		}
		p.upper[idx] = b
		p.variableTypes[idx] = kinds.Integer
	}
	return nil
}

func (p *Parser) processRanges(line dataline.Line) error {
	p.ensureBounds()

	name := line.SecondName()
	r, err := smpserr.RequireNumber(line.FirstNumber(), "RANGES entry for %q is missing a numeric value", name)
	if err != nil {
		return err
	}
	p.setRange(name, r)
	if line.HasThirdName() && line.HasSecondNumber() {
		p.setRange(line.ThirdName(), line.SecondNumber())
	}
	return nil
}

// setRange records the derived second row for constraint name, ranged
// by r.
func (p *Parser) setRange(name string, r float64) {
	idx, ok := p.constrIdx[name]
	if !ok {
		p.Warnf("RANGES references unknown constraint %q - ignored", name)
		return
	}

	absR := math.Abs(r)
	sense := p.constraintSenses[idx]
	base := 0.0
	if p.rhsAllocated {
		base = p.rhs[idx]
	}

	var derived rangeEntry
	switch sense {
	case kinds.SenseGE:
		derived = rangeEntry{sense: kinds.SenseLE, rhs: base + absR}
	case kinds.SenseLE:
		derived = rangeEntry{sense: kinds.SenseGE, rhs: base - absR}
	case kinds.SenseEQ:
		// Unlike the G and L cases, an E-sense row has no side of its own
		// to keep: RANGES turns it into two one-sided rows, so the row's
		// own sense is rewritten in place (to G or L, by the sign of r)
		// rather than left as E for Senses().
		if r >= 0 {
			derived = rangeEntry{sense: kinds.SenseLE, rhs: base + r}
			p.constraintSenses[idx] = kinds.SenseGE
		} else {
			derived = rangeEntry{sense: kinds.SenseGE, rhs: base + r}
			p.constraintSenses[idx] = kinds.SenseLE
		}
	}

	if _, exists := p.ranges[name]; !exists {
		p.rangesOrder = append(p.rangesOrder, name)
	}
	p.ranges[name] = derived
}

// Name returns the problem name from the NAME header.
func (p *Parser) Name() string { return p.Base.Name() }

// ConstraintNames returns the constraint names in ROWS declaration
// order, excluding the objective row.
func (p *Parser) ConstraintNames() []string { return p.constraintNames }

// Senses returns each constraint's sense, parallel to ConstraintNames.
func (p *Parser) Senses() []kinds.Sense { return p.constraintSenses }

// RHS returns the right-hand-side vector, parallel to ConstraintNames.
// Zero-valued (but correctly sized) if the file had no RHS section.
func (p *Parser) RHS() []float64 {
	if !p.rhsAllocated {
		return make([]float64, len(p.constraintNames))
	}
	return p.rhs
}

// ObjectiveName returns the name of the first N-row encountered.
func (p *Parser) ObjectiveName() string { return p.objectiveName }

// ObjectiveCoefficients returns a dense coefficient vector parallel to
// VariableNames, assembled on demand from the accumulated objective
// terms (later duplicate entries for the same variable accumulate, as
// COLUMNS may legitimately repeat a variable across lines).
func (p *Parser) ObjectiveCoefficients() []float64 {
	coeffs := make([]float64, len(p.variableNames))
	for _, term := range p.objCoeffs {
		if idx, ok := p.varIdx[term.variable]; ok {
			coeffs[idx] += term.value
		}
	}
	return coeffs
}

// VariableNames returns the variable names in COLUMNS declaration
// order.
func (p *Parser) VariableNames() []string { return p.variableNames }

// Types returns each variable's type, parallel to VariableNames.
func (p *Parser) Types() []kinds.VarType { return p.variableTypes }

// LowerBounds returns the lower bound vector, parallel to
// VariableNames. Zero-valued (but correctly sized) if the file had no
// BOUNDS/RANGES section.
func (p *Parser) LowerBounds() []float64 {
	if !p.boundsAllocated {
		return make([]float64, len(p.variableNames))
	}
	return p.lower
}

// UpperBounds returns the upper bound vector, parallel to
// VariableNames, defaulting to +Inf when no BOUNDS/RANGES section was
// present.
func (p *Parser) UpperBounds() []float64 {
	if !p.boundsAllocated {
		upper := make([]float64, len(p.variableNames))
		for i := range upper {
			upper[i] = math.Inf(1)
		}
		return upper
	}
	return p.upper
}

// NumConstraints returns len(ConstraintNames()).
func (p *Parser) NumConstraints() int { return len(p.constraintNames) }

// NumVariables returns len(VariableNames()).
func (p *Parser) NumVariables() int { return len(p.variableNames) }

// Coefficients returns the sparse constraint matrix, including the
// synthetic rows RANGES entries contribute. The result is built once
// and cached.
func (p *Parser) Coefficients() *Matrix {
	if p.matrix == nil {
		p.matrix = p.buildMatrix()
	}
	return p.matrix
}
