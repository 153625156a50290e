package dataline

import "strings"

// Context names, for a single section, which whitespace-delimited token
// index holds each logical field. Every (S)MPS section uses the same
// six logical fields as the fixed-column layout (indicator, first/
// second/third name, first/second number); only their presence and
// token position vary by section. An index of -1 marks a field this
// section never carries.
type Context struct {
	Indicator    int
	FirstName    int
	SecondName   int
	FirstNumber  int
	ThirdName    int
	SecondNumber int
}

// Free is the free-form (whitespace-tokenized) DataLine implementation.
// Field presence is derived from how many tokens the line actually has,
// compared against the Context's index for that field.
type Free struct {
	raw   string
	parts []string
	ctx   Context
}

// NewFree builds a Free DataLine from one already right-trimmed input
// line and the Context describing the current section's field layout.
func NewFree(raw string, ctx Context) *Free {
	return &Free{raw: raw, parts: strings.Fields(raw), ctx: ctx}
}

func (f *Free) Raw() string     { return f.raw }
func (f *Free) IsBlank() bool   { return isBlank(f.raw) }
func (f *Free) IsComment() bool { return isComment(f.raw) }
func (f *Free) IsHeader() bool  { return isHeader(f.raw) }

// at returns token idx, or the empty string if idx is out of range or
// negative (field not applicable to this context).
func (f *Free) at(idx int) string {
	if idx < 0 || idx >= len(f.parts) {
		return ""
	}
	return f.parts[idx]
}

func (f *Free) FirstHeaderWord() string {
	return f.at(0)
}

func (f *Free) HasSecondHeaderWord() bool {
	return len(f.parts) > 1
}

func (f *Free) SecondHeaderWord() string {
	if len(f.parts) <= 1 {
		return ""
	}
	// The second header word is "the rest of the line" in fixed format,
	// so join any remaining tokens (a STOCH/TIME name may itself carry
	// spaces once tokenized back together is impossible; joining with a
	// single space is the closest free-form analogue).
	return strings.Join(f.parts[1:], " ")
}

func (f *Free) Indicator() string     { return f.at(f.ctx.Indicator) }
func (f *Free) FirstName() string     { return f.at(f.ctx.FirstName) }
func (f *Free) SecondName() string    { return f.at(f.ctx.SecondName) }
func (f *Free) ThirdName() string     { return f.at(f.ctx.ThirdName) }
func (f *Free) HasThirdName() bool    { return f.ThirdName() != "" }

func (f *Free) FirstNumber() float64  { return parseField(f.at(f.ctx.FirstNumber)) }
func (f *Free) SecondNumber() float64 { return parseField(f.at(f.ctx.SecondNumber)) }
func (f *Free) HasSecondNumber() bool { return !isNaN(f.SecondNumber()) }
