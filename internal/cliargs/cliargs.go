// Package cliargs converts between command line text and the typed values
// of the render and scan packages.
//
// A render argument is written kind:value, for example i:42, f:2.5,
// L:0.1, s:hello. Numbers are parsed with package scan, so i accepts the
// same decimal, octal and hex forms as %i.
package cliargs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/dfmt.v0/dec"
	"gopkg.in/dfmt.v0/directive"
	"gopkg.in/dfmt.v0/render"
	"gopkg.in/dfmt.v0/scan"
)

// ErrBadArg is returned for an argument token that cannot be converted.
var ErrBadArg = errors.New("invalid argument")

// Kinds lists the accepted argument kinds with a short description.
var Kinds = []struct{ Kind, Desc string }{
	{"i", "signed integer (decimal, 0 octal or 0x hex)"},
	{"u", "unsigned integer"},
	{"f", "float64"},
	{"L", "exact decimal"},
	{"c", "single byte character"},
	{"lc", "wide character"},
	{"s", "byte string"},
	{"ls", "wide string"},
	{"p", "pointer value"},
}

// ParseArg converts one kind:value token to a render argument.
func ParseArg(tok string) (render.Arg, error) {
	kind, val, ok := strings.Cut(tok, ":")
	if !ok {
		return render.Arg{}, fmt.Errorf("%w %q: want kind:value", ErrBadArg, tok)
	}
	switch kind {
	case "i":
		var v int64
		if err := scanWhole(val, "%lli", scan.Int(&v)); err != nil {
			return render.Arg{}, fmt.Errorf("%w %q: %w", ErrBadArg, tok, err)
		}
		return render.Int(v), nil
	case "u":
		var v uint64
		if err := scanWhole(val, "%llu", scan.Uint(&v)); err != nil {
			return render.Arg{}, fmt.Errorf("%w %q: %w", ErrBadArg, tok, err)
		}
		return render.Uint(v), nil
	case "f":
		var v float64
		if err := scanWhole(val, "%lf", scan.Float64(&v)); err != nil {
			return render.Arg{}, fmt.Errorf("%w %q: %w", ErrBadArg, tok, err)
		}
		return render.Float(v), nil
	case "L":
		v := new(dec.Dec)
		if err := scanWhole(val, "%Lf", scan.Decimal(v)); err != nil {
			return render.Arg{}, fmt.Errorf("%w %q: %w", ErrBadArg, tok, err)
		}
		return render.Decimal(v), nil
	case "c":
		if len(val) != 1 {
			return render.Arg{}, fmt.Errorf("%w %q: want one byte", ErrBadArg, tok)
		}
		return render.Char(val[0]), nil
	case "lc":
		r, size := utf8.DecodeRuneInString(val)
		if size == 0 || size != len(val) || r == utf8.RuneError && size == 1 {
			return render.Arg{}, fmt.Errorf("%w %q: want one character", ErrBadArg, tok)
		}
		return render.WChar(r), nil
	case "s":
		return render.Str(val), nil
	case "ls":
		return render.WStr([]rune(val)), nil
	case "p":
		var v uintptr
		if err := scanWhole(val, "%p", scan.Pointer(&v)); err != nil {
			return render.Arg{}, fmt.Errorf("%w %q: %w", ErrBadArg, tok, err)
		}
		return render.Pointer(v), nil
	}
	return render.Arg{}, fmt.Errorf("%w %q: unknown kind %q", ErrBadArg, tok, kind)
}

// ParseArgs converts every token with ParseArg.
func ParseArgs(toks []string) ([]render.Arg, error) {
	args := make([]render.Arg, 0, len(toks))
	for _, tok := range toks {
		a, err := ParseArg(tok)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

// scanWhole scans val with a single directive and requires that it
// consumes all of val.
func scanWhole(val, verb string, sl scan.Slot) error {
	end := -1
	if _, err := scan.Sscanf(val, verb+"%n", sl, scan.Int(&end)); err != nil {
		return err
	}
	if end != len(val) {
		return fmt.Errorf("trailing text %q", val[end:])
	}
	return nil
}

// A Value is one slot derived from a scan template.
type Value struct {
	// Index is the position of the slot, starting at 1.
	Index     int
	Directive directive.Directive
	Slot      scan.Slot
	text      func() string
	stored    func() bool
}

// Text formats the value the slot holds.
func (v Value) Text() string {
	return v.text()
}

// SlotsFor returns one Value for each directive of tmpl that assigns a
// slot, with a slot type wide enough for the directive.
func SlotsFor(tmpl string) ([]Value, error) {
	ds, err := directive.ScanDirectives(tmpl)
	if err != nil {
		return nil, err
	}
	var vals []Value
	for _, d := range ds {
		if d.Suppress || d.Kind == directive.Percent {
			continue
		}
		v := Value{Index: len(vals) + 1, Directive: d}
		v.Slot, v.text, v.stored = slotFor(d)
		vals = append(vals, v)
	}
	return vals, nil
}

// slotFor returns the slot for d, the formatter of its value and, for
// %n, a report of whether the scan reached it.
func slotFor(d directive.Directive) (scan.Slot, func() string, func() bool) {
	if d.Kind == directive.Count {
		v := new(int64)
		*v = -1
		return scan.Int(v), func() string { return strconv.FormatInt(*v, 10) },
			func() bool { return *v >= 0 }
	}
	sl, text := valueSlot(d)
	return sl, text, nil
}

func valueSlot(d directive.Directive) (scan.Slot, func() string) {
	switch k := d.Kind; {
	case k == directive.Char, k == directive.String:
		v := new(string)
		return scan.String(v), func() string { return *v }
	case k == directive.Pointer:
		v := new(uintptr)
		return scan.Pointer(v), func() string { return sprintf("%p", render.Pointer(*v)) }
	case k.IsSigned() && k.IsInteger():
		v := new(int64)
		return scan.Int(v), func() string { return sprintf("%lld", render.Int(*v)) }
	case k.IsInteger():
		v := new(uint64)
		return scan.Uint(v), func() string { return sprintf("%llu", render.Uint(*v)) }
	case d.Length == directive.LenLongDouble:
		v := new(dec.Dec)
		return scan.Decimal(v), v.String
	case d.Length == directive.LenLong:
		v := new(float64)
		return scan.Float64(v), func() string { return strconv.FormatFloat(*v, 'g', -1, 64) }
	default:
		v := new(float32)
		return scan.Float32(v), func() string { return strconv.FormatFloat(float64(*v), 'g', -1, 32) }
	}
}

func sprintf(tmpl string, a render.Arg) string {
	s, _ := render.Sprintf(tmpl, a)
	return s
}

// Assigned returns the values stored by a scan call that reported n
// assignments, in template order.
func Assigned(vals []Value, n int) []Value {
	var out []Value
	seen := 0
	for _, v := range vals {
		if v.stored != nil {
			if v.stored() {
				out = append(out, v)
			}
			continue
		}
		if seen >= n {
			continue
		}
		seen++
		out = append(out, v)
	}
	return out
}
