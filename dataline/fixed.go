package dataline

import "strconv"

// Fixed-format column spans, 1-indexed inclusive per the Standard Input
// Format for Multiperiod Stochastic Linear Programs (Birge et al.,
// WP-87-118), converted here to Go's half-open slice bounds.
const (
	indicatorStart, indicatorEnd       = 1, 3
	firstNameStart, firstNameEnd       = 4, 12
	secondNameStart, secondNameEnd     = 14, 22
	firstNumberStart, firstNumberEnd   = 24, 36
	thirdNameStart, thirdNameEnd       = 39, 47
	secondNumberStart, secondNumberEnd = 49, 61
	headerFirstStart, headerFirstEnd   = 0, 14
	headerSecondStart, headerSecondEnd = 14, 72
)

// Fixed is the fixed-column DataLine implementation: the canonical
// (S)MPS layout, where every field occupies a known byte span.
type Fixed struct {
	raw string
}

// NewFixed builds a Fixed DataLine from one already right-trimmed input
// line.
func NewFixed(raw string) *Fixed {
	return &Fixed{raw: raw}
}

func (f *Fixed) Raw() string     { return f.raw }
func (f *Fixed) IsBlank() bool   { return isBlank(f.raw) }
func (f *Fixed) IsComment() bool { return isComment(f.raw) }
func (f *Fixed) IsHeader() bool  { return isHeader(f.raw) }

// span extracts raw[start:end], clamped to the line's actual length, and
// trims surrounding whitespace. Accessing a span entirely beyond the end
// of the line yields the empty string, never a panic.
func (f *Fixed) span(start, end int) string {
	n := len(f.raw)
	if start >= n {
		return ""
	}
	if end > n {
		end = n
	}
	return trimSpace(f.raw[start:end])
}

func (f *Fixed) FirstHeaderWord() string   { return f.span(headerFirstStart, headerFirstEnd) }
func (f *Fixed) HasSecondHeaderWord() bool { return f.SecondHeaderWord() != "" }
func (f *Fixed) SecondHeaderWord() string  { return f.span(headerSecondStart, headerSecondEnd) }
func (f *Fixed) Indicator() string         { return f.span(indicatorStart, indicatorEnd) }
func (f *Fixed) FirstName() string         { return f.span(firstNameStart, firstNameEnd) }
func (f *Fixed) SecondName() string        { return f.span(secondNameStart, secondNameEnd) }
func (f *Fixed) HasThirdName() bool        { return f.ThirdName() != "" }
func (f *Fixed) ThirdName() string         { return f.span(thirdNameStart, thirdNameEnd) }

func (f *Fixed) FirstNumber() float64 {
	return parseField(f.span(firstNumberStart, firstNumberEnd))
}

func (f *Fixed) SecondNumber() float64 {
	return parseField(f.span(secondNumberStart, secondNumberEnd))
}

func (f *Fixed) HasSecondNumber() bool {
	return !isNaN(f.SecondNumber())
}

// parseField parses an ASCII floating point literal (sign, integer,
// fraction, exponent — scientific notation included), returning NaN for
// a blank field. A DataLine accessor never errors; a
// non-blank field that fails to parse also yields NaN, leaving
// higher-level validation (e.g. a BOUNDS entry with a required but
// unparseable b) to the parser layer.
func parseField(s string) float64 {
	if s == "" {
		return NaN
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NaN
	}
	return v
}

func isNaN(f float64) bool { return f != f }
