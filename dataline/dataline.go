// Package dataline wraps a single physical line of (S)MPS input and
// exposes the fixed set of positional accessors the grammar needs,
// regardless of whether the surrounding file is fixed-column or
// free-form. This is the leaf dependency of the whole parser: every
// section handler in every file-type parser consumes a Line rather
// than a raw string.
package dataline

import "math"

// NaN is the sentinel returned by numeric accessors when the backing
// field is blank.
var NaN = math.NaN()

// Line is a single input line, classified and field-accessible. Fixed
// and Free implement the same contract; which one a parser constructs
// is a per-parser configuration choice (see parser.WithFreeForm).
type Line interface {
	// Raw returns the right-trimmed original line text.
	Raw() string

	// IsBlank reports whether the line is empty after trimming.
	IsBlank() bool

	// IsComment reports whether the line is blank, or its content
	// (after discarding leading whitespace) starts with '*'.
	IsComment() bool

	// IsHeader reports whether column 1 holds a non-space, non-'*'
	// byte, marking this line as a section header.
	IsHeader() bool

	// FirstHeaderWord returns the header's first word. Only meaningful
	// when IsHeader is true.
	FirstHeaderWord() string

	// HasSecondHeaderWord reports whether a second header word exists.
	HasSecondHeaderWord() bool

	// SecondHeaderWord returns the header's second word (the rest of
	// the line, trimmed, for a fixed-format header).
	SecondHeaderWord() string

	// Indicator returns the two-letter section indicator field.
	Indicator() string

	// FirstName returns the first name field.
	FirstName() string

	// SecondName returns the second name field.
	SecondName() string

	// FirstNumber returns the first numeric field, or NaN if blank.
	FirstNumber() float64

	// HasThirdName reports whether the third name field is non-empty.
	HasThirdName() bool

	// ThirdName returns the third name field.
	ThirdName() string

	// HasSecondNumber reports whether the second numeric field is
	// present (i.e. not NaN).
	HasSecondNumber() bool

	// SecondNumber returns the second numeric field, or NaN if blank.
	SecondNumber() float64
}

// isBlank is shared by both implementations: true iff the trimmed raw
// text has zero length.
func isBlank(raw string) bool {
	return len(trimSpace(raw)) == 0
}

// isComment treats a line as a comment when it is blank, or its
// left-stripped text starts with '*'.
func isComment(raw string) bool {
	if isBlank(raw) {
		return true
	}
	stripped := lstrip(raw)
	return len(stripped) > 0 && stripped[0] == '*'
}

// isHeader reports whether column 1 is neither a space nor '*'. A blank
// line is never a header.
func isHeader(raw string) bool {
	if len(raw) == 0 {
		return false
	}
	return raw[0] != ' ' && raw[0] != '*'
}

func lstrip(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpaceByte(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
