// Package parser implements the file-type-independent parts of the SMPS
// parsers: file location resolution, the section state machine, and the
// main line-dispatch loop. CoreParser, TimeParser, and StochParser each
// embed a *Base and supply their own section handler table.
package parser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/smps-go/smps/dataline"
	"github.com/smps-go/smps/smpserr"
)

// skipState is the sentinel state entered when a header names a section
// the parser's subclass does not recognize; every line until the next
// recognized header is silently discarded.
const skipState = "SKIP"

// endState is the sentinel section name that ends parsing outright.
const endState = "ENDATA"

// Handler processes one data line belonging to the section it is
// registered under.
type Handler func(line dataline.Line) error

// Option configures a Base at construction time.
type Option func(*Base)

// WithFreeForm switches a parser from fixed-column to whitespace-
// tokenized lexing. Fixed-column is the default, matching the
// historical (S)MPS convention.
func WithFreeForm() Option {
	return func(b *Base) { b.isFixed = false }
}

// WithLogger injects a logger, overriding the package default
// (logrus.StandardLogger()).
func WithLogger(logger *logrus.Logger) Option {
	return func(b *Base) { b.logger = logger }
}

// Base is the shared parser driver. It is not used directly; it is
// embedded by CoreParser, TimeParser, and StochParser, which supply a
// Steps table (ordered by declaration — the first entry names the
// initial state) and, for free-form lexing, a Contexts table mapping
// each section name to its token layout.
type Base struct {
	location   string
	extensions []string
	isFixed    bool
	logger     *logrus.Logger

	state       string
	sections    []string // declaration order; sections[0] is the initial state
	steps       map[string]Handler
	contexts    map[string]dataline.Context
	headerHooks map[string]Handler

	name     string
	warnings []string
}

// NewBase resolves location against extensions and returns a Base ready
// to have its Steps (and, for free-form use, Contexts) installed before
// Parse is called. Resolution failure is reported immediately, at
// construction time.
func NewBase(location string, extensions []string, opts ...Option) (*Base, error) {
	b := &Base{
		location:   location,
		extensions: extensions,
		isFixed:    true,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if _, err := b.fileLocation(); err != nil {
		return nil, err
	}
	return b, nil
}

// Init installs the section handler table and, for free-form files, the
// per-section field contexts. sections must list section names in
// declaration order; steps must have exactly those keys.
func (b *Base) Init(sections []string, steps map[string]Handler, contexts map[string]dataline.Context) {
	b.sections = sections
	b.steps = steps
	b.contexts = contexts
	b.state = sections[0]
}

// SetHeaderHooks installs, for sections whose own header line carries
// extra information beyond the section name (TIME's PERIODS header
// names IMPLICIT or EXPLICIT as its second word, for instance), a
// handler invoked with that header line itself at the moment the
// parser transitions into the section. Sections with no hook are
// unaffected; this is never required for a well-formed subclass.
func (b *Base) SetHeaderHooks(hooks map[string]Handler) {
	b.headerHooks = hooks
}

// Name returns the problem name recorded from this file's opening
// header line (NAME/TIME/STOCH).
func (b *Base) Name() string { return b.name }

// SetName is called by a subclass's header handler once the second
// header word has been read.
func (b *Base) SetName(name string) { b.name = name }

// Warnings returns every non-fatal warning raised while parsing, in the
// order they were raised.
func (b *Base) Warnings() []string { return append([]string(nil), b.warnings...) }

// Warnf records and logs a non-fatal warning: a malformed-but-recoverable
// situation, such as an unknown section or a RANGES/RHS entry naming an
// unknown constraint.
func (b *Base) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	b.warnings = append(b.warnings, msg)
	b.logger.Warn(msg)
}

func (b *Base) warn(format string, args ...interface{}) { b.Warnf(format, args...) }

// Logger returns the logger this parser was constructed with, for
// subclasses that need to emit logged-only debug/info events that fall
// short of a recorded warning.
func (b *Base) Logger() *logrus.Logger { return b.logger }

// fileLocation resolves b.location to an existing file path: the
// location itself if it already names an existing file, else location
// with each accepted extension appended in turn.
func (b *Base) fileLocation() (string, error) {
	if info, err := os.Stat(b.location); err == nil && !info.IsDir() {
		return b.location, nil
	}

	base := strings.TrimSuffix(b.location, filepath.Ext(b.location))
	for _, ext := range b.extensions {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", smpserr.NewNotFoundError(b.location)
}

// Parse reads the resolved file line by line, driving the section state
// machine and dispatching each data line to its section's Handler.
func (b *Base) Parse() error {
	path, err := b.fileLocation()
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		raw := strings.TrimRight(scanner.Text(), " \t\r")
		line := b.newLine(raw)

		if line.IsComment() {
			continue
		}
		if b.state == skipState && !line.IsHeader() {
			continue
		}
		if line.IsHeader() {
			skip, err := b.transition(line)
			if err != nil {
				return err
			}
			if b.state == endState {
				break
			}
			if skip {
				continue
			}
		}

		handler, ok := b.steps[b.state]
		if !ok {
			// No handler registered for a known, non-header state is a
			// construction bug in the subclass, not a data error.
			continue
		}
		if err := handler(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return nil
}

func (b *Base) newLine(raw string) dataline.Line {
	if b.isFixed {
		return dataline.NewFixed(raw)
	}
	return dataline.NewFree(raw, b.contexts[b.state])
}

// transition applies the header transition rule: staying
// in the initial state for the file's own opening header, switching to
// a recognized section (or ENDATA), or entering SKIP with a warning for
// anything else. It returns whether the header line itself should be
// skipped (true in every case but the first).
func (b *Base) transition(line dataline.Line) (skip bool, err error) {
	header := line.FirstHeaderWord()

	if header == b.state {
		return false, nil
	}

	if header == endState || b.isKnownSection(header) {
		b.logger.Infof("now parsing the %s section", header)
		b.state = header
		if hook, ok := b.headerHooks[header]; ok {
			if err := hook(line); err != nil {
				return true, err
			}
		}
		return true, nil
	}

	b.warn("section %s is not understood - skipping its entries", header)
	b.state = skipState
	return true, nil
}

func (b *Base) isKnownSection(name string) bool {
	_, ok := b.steps[name]
	return ok
}
