package render

import "gopkg.in/dfmt.v0/dec"

type argKind uint8

const (
	argNone argKind = iota
	argInt
	argUint
	argFloat
	argDecimal
	argChar
	argWChar
	argStr
	argWStr
	argPointer
	argCount
)

var argKindNames = [...]string{
	argNone:    "none",
	argInt:     "int",
	argUint:    "uint",
	argFloat:   "float",
	argDecimal: "decimal",
	argChar:    "char",
	argWChar:   "wchar",
	argStr:     "string",
	argWStr:    "wstring",
	argPointer: "pointer",
	argCount:   "count",
}

func (k argKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return "unknown"
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// An Arg is one value of the argument sequence passed to a render call.
// Build it with one of the constructors; the zero Arg matches no
// directive.
type Arg struct {
	kind  argKind
	bits  uint64 // two's complement bits of integer, char and pointer values
	f     float64
	d     *dec.Dec
	s     string
	r     []rune
	store func(int64)
}

// Int returns a signed integer argument.
func Int[T signed](v T) Arg {
	return Arg{kind: argInt, bits: uint64(int64(v))}
}

// Uint returns an unsigned integer argument.
func Uint[T unsigned](v T) Arg {
	return Arg{kind: argUint, bits: uint64(v)}
}

// Float returns a floating point argument.
func Float(f float64) Arg {
	return Arg{kind: argFloat, f: f}
}

// Decimal returns an exact decimal argument; it is the extended-precision
// value of the L length modifier. A nil d is an argument type error.
func Decimal(d *dec.Dec) Arg {
	return Arg{kind: argDecimal, d: d}
}

// Char returns a single byte character argument.
func Char(c byte) Arg {
	return Arg{kind: argChar, bits: uint64(c)}
}

// WChar returns a wide character argument.
func WChar(r rune) Arg {
	return Arg{kind: argWChar, bits: uint64(int64(r))}
}

// Str returns a byte string argument.
func Str(s string) Arg {
	return Arg{kind: argStr, s: s}
}

// WStr returns a wide string argument.
func WStr(r []rune) Arg {
	return Arg{kind: argWStr, r: r}
}

// Pointer returns a pointer argument, written by %p.
func Pointer(p uintptr) Arg {
	return Arg{kind: argPointer, bits: uint64(p)}
}

// Count returns an argument for %n: the number of bytes written so far is
// narrowed per the directive's length modifier and stored into *p.
func Count[T signed](p *T) Arg {
	return Arg{kind: argCount, store: func(n int64) { *p = T(n) }}
}

// integer returns the bits of an argument usable by an integer conversion.
func (a Arg) integer() (uint64, bool) {
	switch a.kind {
	case argInt, argUint, argChar, argWChar, argPointer:
		return a.bits, true
	}
	return 0, false
}
