// Package directive implements the directive mini-language shared by the
// render and scan engines: a marker '%' followed by flags, width,
// precision, length modifier and one conversion character.
//
//	%[flags][width][.precision][length]kind
//
//	flags      - + space 0 #
//	width      digits, or * (render: taken from the next argument;
//	           scan: assignment suppression, written before the width)
//	precision  . followed by digits or *; a bare . means 0
//	length     hh h l ll L
//	kind       c d i o u x X e E f F g G s p n %
package directive

import "strings"

// Absent marks a width or precision that was not given.
const Absent = -1

// Flags are the directive flags.
type Flags struct {
	Minus bool // '-': left-justify
	Plus  bool // '+': always write a sign
	Space bool // ' ': space in place of a plus sign
	Zero  bool // '0': pad with zeros after the sign and prefix
	Sharp bool // '#': alternate form
}

func (f Flags) String() string {
	var b strings.Builder
	if f.Minus {
		b.WriteByte('-')
	}
	if f.Plus {
		b.WriteByte('+')
	}
	if f.Space {
		b.WriteByte(' ')
	}
	if f.Zero {
		b.WriteByte('0')
	}
	if f.Sharp {
		b.WriteByte('#')
	}
	return b.String()
}

// Length is the length modifier class.
type Length uint8

const (
	LenDefault    Length = iota
	LenChar              // hh
	LenShort             // h
	LenLong              // l
	LenLongLong          // ll
	LenLongDouble        // L
)

var lengthNames = [...]string{"", "hh", "h", "l", "ll", "L"}

func (l Length) String() string {
	if int(l) < len(lengthNames) {
		return lengthNames[l]
	}
	return "?"
}

// Bits returns the integer width, in bits, that the length class selects
// for integer conversions. L on an integer conversion means ll.
func (l Length) Bits() int {
	switch l {
	case LenChar:
		return 8
	case LenShort:
		return 16
	case LenLong, LenLongLong, LenLongDouble:
		return 64
	}
	return 32
}

// Kind is the conversion kind.
type Kind uint8

const (
	KindNone Kind = iota
	Char
	SignedInt // d
	AutoInt   // i: decimal when rendering, base-detecting when scanning
	Unsigned
	Octal
	HexLower
	HexUpper
	FixedLower
	FixedUpper
	ExpLower
	ExpUpper
	GeneralLower
	GeneralUpper
	String
	Pointer
	Count
	Percent
)

// verbs maps conversion characters to kinds.
var verbs = [256]Kind{
	'c': Char,
	'd': SignedInt,
	'i': AutoInt,
	'u': Unsigned,
	'o': Octal,
	'x': HexLower,
	'X': HexUpper,
	'f': FixedLower,
	'F': FixedUpper,
	'e': ExpLower,
	'E': ExpUpper,
	'g': GeneralLower,
	'G': GeneralUpper,
	's': String,
	'p': Pointer,
	'n': Count,
	'%': Percent,
}

var kindVerbs = [...]byte{
	KindNone: '?', Char: 'c', SignedInt: 'd', AutoInt: 'i', Unsigned: 'u',
	Octal: 'o', HexLower: 'x', HexUpper: 'X', FixedLower: 'f', FixedUpper: 'F',
	ExpLower: 'e', ExpUpper: 'E', GeneralLower: 'g', GeneralUpper: 'G',
	String: 's', Pointer: 'p', Count: 'n', Percent: '%',
}

// KindOf returns the kind for the conversion character c, or KindNone.
func KindOf(c byte) Kind {
	return verbs[c]
}

// Verb returns the conversion character of k.
func (k Kind) Verb() byte {
	if int(k) < len(kindVerbs) {
		return kindVerbs[k]
	}
	return '?'
}

func (k Kind) String() string {
	return string(k.Verb())
}

// IsInteger reports whether k converts an integer (including pointers).
func (k Kind) IsInteger() bool {
	return k >= SignedInt && k <= HexUpper || k == Pointer
}

// IsFloat reports whether k converts a floating point value.
func (k Kind) IsFloat() bool {
	return k >= FixedLower && k <= GeneralUpper
}

// IsSigned reports whether k writes a sign for its value.
func (k Kind) IsSigned() bool {
	return k == SignedInt || k == AutoInt || k == Pointer || k.IsFloat()
}

// Upper reports whether k writes letters (digits, exponent, inf, nan) in
// upper case.
func (k Kind) Upper() bool {
	switch k {
	case HexUpper, FixedUpper, ExpUpper, GeneralUpper:
		return true
	}
	return false
}

// Base returns the number base of an integer kind; 0 for AutoInt, which
// detects it while scanning.
func (k Kind) Base() int {
	switch k {
	case Octal:
		return 8
	case HexLower, HexUpper, Pointer:
		return 16
	case AutoInt:
		return 0
	}
	return 10
}

// A Directive is one parsed conversion.
//
// Width and Precision are resolved: a value fetched from an argument has
// been applied, a negative fetched width turned into Flags.Minus, and a
// negative fetched precision into Absent.
type Directive struct {
	Flags     Flags
	Width     int // Absent when not given
	Precision int // Absent when not given
	Length    Length
	Kind      Kind
	Suppress  bool // scan only: '*', parse but do not assign
}

// Wide reports whether a char or string directive uses wide characters.
func (d Directive) Wide() bool {
	return d.Length == LenLong && (d.Kind == Char || d.Kind == String)
}

// String returns the directive in template syntax.
func (d Directive) String() string {
	var b strings.Builder
	b.WriteByte('%')
	if d.Suppress {
		b.WriteByte('*')
	}
	b.WriteString(d.Flags.String())
	if d.Width != Absent {
		b.Write(appendInt(nil, d.Width))
	}
	if d.Precision != Absent {
		b.WriteByte('.')
		b.Write(appendInt(nil, d.Precision))
	}
	b.WriteString(d.Length.String())
	b.WriteByte(d.Kind.Verb())
	return b.String()
}

func appendInt(dst []byte, v int) []byte {
	if v >= 10 {
		dst = appendInt(dst, v/10)
	}
	return append(dst, byte('0'+v%10))
}
