// Package smpstime implements the TIME file parser: the PERIODS
// section in either its IMPLICIT (stage markers interleaved with
// ROWS/COLUMNS order) or EXPLICIT (direct row/column-to-stage tables)
// layout.
package smpstime

import (
	"strings"

	"github.com/smps-go/smps/dataline"
	"github.com/smps-go/smps/kinds"
	"github.com/smps-go/smps/parser"
)

var fileExtensions = []string{".tim", ".TIM", ".time", ".TIME"}

const (
	sectionTIME    = "TIME"
	sectionPERIODS = "PERIODS"
	sectionROWS    = "ROWS"
	sectionCOLUMNS = "COLUMNS"
)

var sectionOrder = []string{sectionTIME, sectionPERIODS, sectionROWS, sectionCOLUMNS}

// ImplicitMarker is one IMPLICIT-layout PERIODS data line: the
// (column, row) pair at which a new stage begins, and that stage's
// name. Everything from this marker up to (but not including) the
// next one belongs to Stage; resolving that into a full column/row-to-
// stage map is left to the caller (the non-goal of a standalone
// component boundary).
type ImplicitMarker struct {
	Column string
	Row    string
	Stage  string
}

// Parser parses a TIME file.
type Parser struct {
	*parser.Base

	timeType kinds.TimeType

	stageNames []string
	stageIdx   map[string]int

	implicitOffsets []ImplicitMarker

	explicitConstraints map[string]string
	explicitVariables   map[string]string
}

// New resolves location (appending .tim/.time as needed) and returns a
// Parser ready to have Parse called on it.
func New(location string, opts ...parser.Option) (*Parser, error) {
	base, err := parser.NewBase(location, fileExtensions, opts...)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		Base:                base,
		stageIdx:            make(map[string]int),
		explicitConstraints: make(map[string]string),
		explicitVariables:   make(map[string]string),
	}

	steps := map[string]parser.Handler{
		sectionTIME:    p.processTimeHeader,
		sectionPERIODS: p.processPeriods,
		sectionROWS:    p.processExplicitRows,
		sectionCOLUMNS: p.processExplicitColumns,
	}
	contexts := map[string]dataline.Context{
		sectionTIME:    {Indicator: -1, FirstName: -1, SecondName: -1, FirstNumber: -1, ThirdName: -1, SecondNumber: -1},
		sectionPERIODS: {Indicator: -1, FirstName: 0, SecondName: 1, FirstNumber: -1, ThirdName: 2, SecondNumber: -1},
		sectionROWS:    {Indicator: -1, FirstName: 0, SecondName: 1, FirstNumber: -1, ThirdName: -1, SecondNumber: -1},
		sectionCOLUMNS: {Indicator: -1, FirstName: 0, SecondName: 1, FirstNumber: -1, ThirdName: -1, SecondNumber: -1},
	}
	p.Init(sectionOrder, steps, contexts)
	p.SetHeaderHooks(map[string]parser.Handler{
		sectionPERIODS: p.capturePeriodsType,
	})

	return p, nil
}

func (p *Parser) processTimeHeader(line dataline.Line) error {
	if line.HasSecondHeaderWord() {
		p.SetName(line.SecondHeaderWord())
	} else {
		p.Warnf("time file has no value for the TIME field")
	}
	return nil
}

// capturePeriodsType reads IMPLICIT/EXPLICIT off the PERIODS header
// line itself, the moment the driver transitions into that section.
// Only an exact (case-insensitive) match on EXPLICIT switches the
// layout; anything else - absence, IMPLICIT, or a stage-name
// annotation some writers put there instead - stays IMPLICIT. This
// never errors.
func (p *Parser) capturePeriodsType(line dataline.Line) error {
	if strings.ToUpper(line.SecondHeaderWord()) == "EXPLICIT" {
		p.timeType = kinds.Explicit
	} else {
		p.timeType = kinds.Implicit
	}
	return nil
}

func (p *Parser) registerStage(name string) {
	if name == "" {
		return
	}
	if _, ok := p.stageIdx[name]; ok {
		return
	}
	p.stageIdx[name] = len(p.stageNames)
	p.stageNames = append(p.stageNames, name)
}

func (p *Parser) processPeriods(line dataline.Line) error {
	if p.timeType == kinds.Explicit {
		// The EXPLICIT layout carries no data lines of its own; ROWS and
		// COLUMNS follow as their own sections.
		return nil
	}

	column := line.FirstName()
	rowName := line.SecondName()
	stage := line.ThirdName()

	p.registerStage(stage)
	p.implicitOffsets = append(p.implicitOffsets, ImplicitMarker{Column: column, Row: rowName, Stage: stage})
	return nil
}

func (p *Parser) processExplicitRows(line dataline.Line) error {
	name := line.FirstName()
	stage := line.SecondName()
	p.registerStage(stage)
	p.explicitConstraints[name] = stage
	return nil
}

func (p *Parser) processExplicitColumns(line dataline.Line) error {
	name := line.FirstName()
	stage := line.SecondName()
	p.registerStage(stage)
	p.explicitVariables[name] = stage
	return nil
}

// Name returns the problem name from the TIME header.
func (p *Parser) Name() string { return p.Base.Name() }

// TimeType reports whether this file uses the IMPLICIT or EXPLICIT
// PERIODS layout.
func (p *Parser) TimeType() kinds.TimeType { return p.timeType }

// StageNames returns the stage names in first-seen order.
func (p *Parser) StageNames() []string { return p.stageNames }

// NumStages returns len(StageNames()).
func (p *Parser) NumStages() int { return len(p.stageNames) }

// ImplicitOffsets returns the ordered (column, row, stage) markers of
// an IMPLICIT-layout file. Empty for an EXPLICIT file.
func (p *Parser) ImplicitOffsets() []ImplicitMarker { return p.implicitOffsets }

// ExplicitConstraints returns the row-name to stage-name map of an
// EXPLICIT-layout file's ROWS section. Empty for an IMPLICIT file.
func (p *Parser) ExplicitConstraints() map[string]string { return p.explicitConstraints }

// ExplicitVariables returns the column-name to stage-name map of an
// EXPLICIT-layout file's COLUMNS section. Empty for an IMPLICIT file.
func (p *Parser) ExplicitVariables() map[string]string { return p.explicitVariables }
