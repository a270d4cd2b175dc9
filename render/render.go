// Package render writes typed values as text under a directive template,
// producing the same characters as a native C printf for the supported
// conversions.
//
// A template is literal text with directives (see package directive).
// Each directive takes its value, and any '*' width or precision, from
// the next Arg:
//
//	s, err := render.Sprintf("%-8s|%+08.3f|%#x", render.Str("pi"),
//		render.Float(3.14159), render.Int(255))
//	// s == "pi      |+003.142|0xff"
//
// Integer values are narrowed to the width selected by the length
// modifier (hh 8 bits, h 16, none 32, l and ll 64) exactly as a C cast
// would. float64 values are rounded half to even on their exact binary
// value. Decimal values are rounded with the Printer's Rounder.
package render

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/dfmt.v0/dec"
	"gopkg.in/dfmt.v0/directive"
)

var (
	// ErrMissingArg is returned when a directive needs more arguments than
	// were passed.
	ErrMissingArg = errors.New("render: missing argument")
	// ErrArgType is returned when an argument cannot be written by the
	// directive it is matched with.
	ErrArgType = errors.New("render: wrong argument type")
	// ErrResourceExhausted is returned when a width or precision asks for a
	// field larger than the Printer allows.
	ErrResourceExhausted = errors.New("render: field too large")
)

// DefaultMaxField is the largest width or precision a Printer accepts
// unless MaxField says otherwise.
const DefaultMaxField = 1 << 20

// A Printer renders templates. The zero value is ready to use; a Printer
// holds no state between calls and may be shared.
type Printer struct {
	// Rounder rounds Decimal arguments; nil means dec.RoundHalfUp.
	Rounder dec.Rounder
	// MaxField bounds widths and precisions; 0 means DefaultMaxField.
	MaxField int
}

var std Printer

func (p *Printer) rounder() dec.Rounder {
	if p.Rounder == nil {
		return dec.RoundHalfUp
	}
	return p.Rounder
}

func (p *Printer) maxField() int {
	if p.MaxField <= 0 {
		return DefaultMaxField
	}
	return p.MaxField
}

// Append renders tmpl with args, appends the text to dst and returns the
// extended buffer. On error the buffer holds the text rendered before the
// failing directive. An unknown conversion ends rendering without error.
func (p *Printer) Append(dst []byte, tmpl string, args ...Arg) ([]byte, error) {
	s := state{p: p, buf: dst, start: len(dst), args: args}
	err := s.run(tmpl)
	return s.buf, err
}

// Sprintf renders tmpl with args and returns the text. Its length is the
// number of bytes emitted.
func (p *Printer) Sprintf(tmpl string, args ...Arg) (string, error) {
	b, err := p.Append(nil, tmpl, args...)
	return string(b), err
}

// Fprintf renders tmpl with args to w and returns the number of bytes
// written. Text rendered before a failing directive is still written.
func (p *Printer) Fprintf(w io.Writer, tmpl string, args ...Arg) (int, error) {
	b, err := p.Append(nil, tmpl, args...)
	n, werr := w.Write(b)
	if err == nil {
		err = werr
	}
	return n, err
}

// Append renders with the default Printer.
func Append(dst []byte, tmpl string, args ...Arg) ([]byte, error) {
	return std.Append(dst, tmpl, args...)
}

// Sprintf renders with the default Printer.
func Sprintf(tmpl string, args ...Arg) (string, error) {
	return std.Sprintf(tmpl, args...)
}

// Fprintf renders with the default Printer.
func Fprintf(w io.Writer, tmpl string, args ...Arg) (int, error) {
	return std.Fprintf(w, tmpl, args...)
}

// state is the cursor over one render call.
type state struct {
	p     *Printer
	buf   []byte
	start int
	args  []Arg
	argi  int
}

func (s *state) next() (Arg, error) {
	if s.argi >= len(s.args) {
		return Arg{}, fmt.Errorf("%w: argument %d", ErrMissingArg, s.argi+1)
	}
	a := s.args[s.argi]
	s.argi++
	return a, nil
}

// fetchInt takes a '*' width or precision from the next argument, read as
// a C int.
func (s *state) fetchInt() (int, error) {
	a, err := s.next()
	if err != nil {
		return 0, err
	}
	if a.kind != argInt && a.kind != argUint {
		return 0, fmt.Errorf("%w: '*' needs an int, got %s", ErrArgType, a.kind)
	}
	return int(int32(a.bits)), nil
}

func (s *state) run(tmpl string) error {
	p := directive.NewParser(tmpl)
	for !p.Done() {
		s.buf = append(s.buf, p.Literal()...)
		if p.Done() {
			break
		}
		d, err := p.ParseRender(s.fetchInt)
		if errors.Is(err, directive.ErrUnknownVerb) {
			return nil
		}
		if err != nil {
			return err
		}
		if limit := s.p.maxField(); d.Width > limit || d.Precision > limit {
			return fmt.Errorf("%w: %s exceeds %d", ErrResourceExhausted, d, limit)
		}
		if err := s.convert(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) convert(d directive.Directive) error {
	if d.Kind == directive.Percent {
		s.pad(d, field{body: []byte{'%'}, zeroPad: d.Flags.Zero})
		return nil
	}
	a, err := s.next()
	if err != nil {
		return err
	}
	if a.kind == argDecimal && a.d != nil && d.Kind.IsFloat() {
		// the digit generators scale by 10**|scale|
		limit := s.p.maxField()
		if sc := int(a.d.Scale()); sc > limit || -sc > limit {
			return fmt.Errorf("%w: decimal scale %d exceeds %d", ErrResourceExhausted, sc, limit)
		}
	}
	var ok bool
	switch k := d.Kind; {
	case k == directive.Count:
		ok = s.count(d, a)
	case k == directive.Char:
		ok = s.char(d, a)
	case k == directive.String:
		ok = s.str(d, a)
	case k == directive.Pointer:
		ok = s.pointer(d, a)
	case k.IsInteger():
		ok = s.integer(d, a)
	case k.IsFloat():
		ok = s.float(d, a)
	}
	if !ok {
		return fmt.Errorf("%w: %s got %s", ErrArgType, d, a.kind)
	}
	return nil
}

func (s *state) count(d directive.Directive, a Arg) bool {
	if a.kind != argCount {
		return false
	}
	a.store(narrowSigned(uint64(len(s.buf)-s.start), d.Length))
	return true
}
