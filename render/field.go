package render

import (
	"math"
	"unicode/utf8"

	"gopkg.in/dfmt.v0/dec"
	"gopkg.in/dfmt.v0/directive"
)

// A field is the text of one conversion before padding: an optional sign,
// a notation prefix and the body.
type field struct {
	sign    byte
	prefix  string
	body    []byte
	zeroPad bool // pad with zeros between prefix and body
}

// pad writes f padded to the directive's width. Left-justified fields are
// padded with spaces on the right; zero padding goes after the sign and
// prefix, never before the sign.
func (s *state) pad(d directive.Directive, f field) {
	n := len(f.prefix) + len(f.body)
	if f.sign != 0 {
		n++
	}
	fill := 0
	if d.Width > n {
		fill = d.Width - n
	}
	if fill > 0 && !d.Flags.Minus && !f.zeroPad {
		s.buf = appendRepeat(s.buf, ' ', fill)
	}
	if f.sign != 0 {
		s.buf = append(s.buf, f.sign)
	}
	s.buf = append(s.buf, f.prefix...)
	if fill > 0 && !d.Flags.Minus && f.zeroPad {
		s.buf = appendRepeat(s.buf, '0', fill)
	}
	s.buf = append(s.buf, f.body...)
	if fill > 0 && d.Flags.Minus {
		s.buf = appendRepeat(s.buf, ' ', fill)
	}
}

func appendRepeat(dst []byte, c byte, n int) []byte {
	for ; n > 0; n-- {
		dst = append(dst, c)
	}
	return dst
}

// narrowSigned truncates bits to the width of l and sign-extends it.
func narrowSigned(bits uint64, l directive.Length) int64 {
	switch l.Bits() {
	case 8:
		return int64(int8(bits))
	case 16:
		return int64(int16(bits))
	case 32:
		return int64(int32(bits))
	}
	return int64(bits)
}

// narrowUnsigned truncates bits to the width of l.
func narrowUnsigned(bits uint64, l directive.Length) uint64 {
	switch l.Bits() {
	case 8:
		return uint64(uint8(bits))
	case 16:
		return uint64(uint16(bits))
	case 32:
		return uint64(uint32(bits))
	}
	return bits
}

// signOf returns the sign character for a signed conversion.
func signOf(f directive.Flags, neg bool) byte {
	switch {
	case neg:
		return '-'
	case f.Plus:
		return '+'
	case f.Space:
		return ' '
	}
	return 0
}

func (s *state) integer(d directive.Directive, a Arg) bool {
	bits, ok := a.integer()
	if !ok {
		return false
	}
	var (
		mag uint64
		neg bool
	)
	if d.Kind.IsSigned() {
		v := narrowSigned(bits, d.Length)
		neg = v < 0
		mag = uint64(v)
		if neg {
			mag = -mag
		}
	} else {
		mag = narrowUnsigned(bits, d.Length)
	}
	f := s.digits(d, mag)
	if d.Kind.IsSigned() {
		f.sign = signOf(d.Flags, neg)
	}
	s.pad(d, f)
	return true
}

// digits builds the body and prefix of an integer field. An explicit
// precision is the minimum number of digits and turns zero padding off;
// zero with precision 0 has no digits.
func (s *state) digits(d directive.Directive, mag uint64) field {
	var f field
	base := d.Kind.Base()
	if base == 0 {
		base = 10 // %i writes decimal
	}
	if mag != 0 || d.Precision != 0 {
		f.body = dec.AppendUint(f.body, mag, base, d.Kind.Upper())
	}
	if d.Precision > len(f.body) {
		body := appendRepeat(make([]byte, 0, d.Precision), '0', d.Precision-len(f.body))
		f.body = append(body, f.body...)
	}
	if d.Flags.Sharp {
		switch d.Kind {
		case directive.Octal:
			if len(f.body) == 0 || f.body[0] != '0' {
				f.body = append([]byte{'0'}, f.body...)
			}
		case directive.HexLower:
			if mag != 0 {
				f.prefix = "0x"
			}
		case directive.HexUpper:
			if mag != 0 {
				f.prefix = "0X"
			}
		}
	}
	f.zeroPad = d.Flags.Zero && d.Precision == directive.Absent
	return f
}

// pointer writes %p: "(nil)" for zero, otherwise 0x and lower case hex
// digits with the sign flags of a signed conversion.
func (s *state) pointer(d directive.Directive, a Arg) bool {
	bits, ok := a.integer()
	if !ok {
		return false
	}
	if bits == 0 {
		s.pad(d, field{body: []byte("(nil)")})
		return true
	}
	f := s.digits(d, bits)
	f.prefix = "0x"
	f.sign = signOf(d.Flags, false)
	s.pad(d, f)
	return true
}

func (s *state) float(d directive.Directive, a Arg) bool {
	var (
		x   *dec.Dec
		neg bool
		r   dec.Rounder
	)
	switch a.kind {
	case argFloat:
		if math.IsNaN(a.f) || math.IsInf(a.f, 0) {
			s.nonFinite(d, a.f)
			return true
		}
		neg = math.Signbit(a.f)
		x = new(dec.Dec).SetFloat64(math.Abs(a.f))
		r = dec.RoundHalfEven
	case argDecimal:
		if a.d == nil {
			return false
		}
		neg = a.d.Sign() < 0
		x = a.d
		r = s.p.rounder()
	default:
		return false
	}

	prec := d.Precision
	if prec == directive.Absent {
		prec = 6
	}
	var digits *dec.Digits
	switch d.Kind {
	case directive.FixedLower, directive.FixedUpper:
		digits = dec.FixedDigits(x, prec, r)
	case directive.ExpLower, directive.ExpUpper:
		digits = dec.SciDigits(x, prec, r)
	default:
		digits = dec.GeneralDigits(x, prec, d.Flags.Sharp, r)
	}
	expChar := byte('e')
	if d.Kind.Upper() {
		expChar = 'E'
	}
	s.pad(d, field{
		sign:    signOf(d.Flags, neg),
		body:    digits.Append(nil, d.Flags.Sharp, expChar),
		zeroPad: d.Flags.Zero,
	})
	return true
}

// nonFinite writes inf or nan, padded with spaces. NaN is never signed.
func (s *state) nonFinite(d directive.Directive, f float64) {
	var fd field
	if math.IsNaN(f) {
		fd.body = []byte("nan")
	} else {
		fd.body = []byte("inf")
		fd.sign = signOf(d.Flags, f < 0)
	}
	if d.Kind.Upper() {
		for i, c := range fd.body {
			fd.body[i] = c - 'a' + 'A'
		}
	}
	s.pad(d, fd)
}

// char writes %c as one byte and %lc as the UTF-8 encoding of a rune.
// Precision and the zero flag do not apply.
func (s *state) char(d directive.Directive, a Arg) bool {
	bits, ok := a.integer()
	if !ok || a.kind == argPointer {
		return false
	}
	var body []byte
	if d.Wide() {
		body = utf8.AppendRune(nil, rune(bits))
	} else {
		body = []byte{byte(bits)}
	}
	s.pad(d, field{body: body})
	return true
}

// str writes %s and %ls. Precision is the maximum number of bytes; a wide
// string is never cut inside a character.
func (s *state) str(d directive.Directive, a Arg) bool {
	var body []byte
	switch a.kind {
	case argStr:
		body = []byte(a.s)
		if d.Wide() {
			body = cutRunes(body, d.Precision)
		} else if d.Precision != directive.Absent && d.Precision < len(body) {
			body = body[:d.Precision]
		}
	case argWStr:
		for _, r := range a.r {
			body = utf8.AppendRune(body, r)
		}
		body = cutRunes(body, d.Precision)
	default:
		return false
	}
	s.pad(d, field{body: body})
	return true
}

// cutRunes shortens the UTF-8 text b to at most n bytes, on a character
// boundary.
func cutRunes(b []byte, n int) []byte {
	if n == directive.Absent || n >= len(b) {
		return b
	}
	i := 0
	for i < len(b) {
		_, size := utf8.DecodeRune(b[i:])
		if i+size > n {
			break
		}
		i += size
	}
	return b[:i]
}
