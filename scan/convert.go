package scan

import (
	"math"
	"strings"
	"unicode/utf8"

	"gopkg.in/dfmt.v0/dec"
	"gopkg.in/dfmt.v0/directive"
)

// char reads %c and %lc: max(width, 1) bytes or characters, without
// skipping white space.
func (s *scanner) char(d directive.Directive, sl Slot) error {
	n := d.Width
	if n == directive.Absent || n == 0 {
		n = 1
	}
	if s.pos >= len(s.in) {
		return ErrInputExhausted
	}
	start := s.pos
	var first rune
	if d.Wide() {
		for i := 0; i < n && s.pos < len(s.in); i++ {
			r, size := utf8.DecodeRuneInString(s.in[s.pos:])
			if i == 0 {
				first = r
			}
			s.pos += size
		}
	} else {
		first = rune(s.in[s.pos])
		s.pos = min(s.pos+n, len(s.in))
	}
	if d.Suppress {
		return nil
	}
	switch {
	case sl.kind == slotString:
		*sl.s = s.in[start:s.pos]
	case sl.kind == slotRune:
		*sl.r = first
	case sl.kind == slotByte && !d.Wide():
		*sl.b = byte(first)
	default:
		return slotError(d, sl)
	}
	return nil
}

// str reads %s: a run of non-space characters of at most width bytes, or
// width characters for %ls.
func (s *scanner) str(d directive.Directive, sl Slot) error {
	s.skipSpace()
	if s.pos >= len(s.in) {
		return ErrInputExhausted
	}
	start := s.pos
	for i := 0; s.pos < len(s.in) && !isSpace(s.in[s.pos]); i++ {
		if d.Width != directive.Absent && d.Width > 0 && i >= d.Width {
			break
		}
		size := 1
		if d.Wide() {
			_, size = utf8.DecodeRuneInString(s.in[s.pos:])
		}
		s.pos += size
	}
	if d.Suppress {
		return nil
	}
	if sl.kind != slotString {
		return slotError(d, sl)
	}
	*sl.s = s.in[start:s.pos]
	return nil
}

// hexPrefix reports whether r starts with 0x or 0X followed by a hex
// digit.
func hexPrefix(r string) bool {
	return len(r) > 2 && r[0] == '0' && (r[1] == 'x' || r[1] == 'X') && dec.DigitValue(r[2]) < 16
}

// integer reads the integer conversions. The sign and a 0x prefix count
// toward the width. Digits beyond the range of the length class saturate
// and are consumed.
func (s *scanner) integer(d directive.Directive, sl Slot) error {
	s.skipSpace()
	r := s.rest(d.Width)
	if len(r) == 0 {
		if s.pos >= len(s.in) {
			return ErrInputExhausted
		}
		return ErrNoDigits
	}
	i := 0
	neg := false
	if r[0] == '+' || r[0] == '-' {
		neg = r[0] == '-'
		i++
	}
	base := d.Kind.Base()
	switch {
	case (base == 16 || base == 0) && hexPrefix(r[i:]):
		base = 16
		i += 2
	case base == 0 && i < len(r) && r[i] == '0':
		base = 8
	case base == 0:
		base = 10
	}

	bits := d.Length.Bits()
	if d.Kind == directive.Pointer {
		bits = 64
	}
	signedConv := d.Kind == directive.SignedInt || d.Kind == directive.AutoInt
	var limit uint64
	switch {
	case signedConv && neg:
		limit = 1 << (bits - 1)
	case signedConv:
		limit = 1<<(bits-1) - 1
	default:
		limit = math.MaxUint64 >> (64 - bits)
	}
	mag, n, sat := dec.ScanUint(r[i:], base, 0, limit)
	if n == 0 {
		return ErrNoDigits
	}
	s.pos += i + n
	if d.Suppress {
		return nil
	}

	if signedConv {
		v := int64(mag)
		if neg {
			v = -v
		}
		switch sl.kind {
		case slotInt:
			sl.setInt(v)
		case slotUint:
			sl.setUint(uint64(v) & (math.MaxUint64 >> (64 - bits)))
		default:
			return slotError(d, sl)
		}
		return nil
	}

	u := mag
	if neg && !sat {
		u = -u & limit
	}
	switch sl.kind {
	case slotUint:
		sl.setUint(u)
	case slotPointer:
		*sl.p = uintptr(u)
	case slotInt:
		// same-width two's complement
		v := int64(u)
		if bits < 64 && u >= 1<<(bits-1) {
			v -= 1 << bits
		}
		sl.setInt(v)
	default:
		return slotError(d, sl)
	}
	return nil
}

// nonFinite matches inf, infinity or nan, in any case, at the start of r.
// It returns the number of bytes matched.
func nonFinite(r string) (n int, nan bool) {
	lower := strings.ToLower(r[:min(len(r), 8)])
	switch {
	case strings.HasPrefix(lower, "infinity"):
		return 8, false
	case strings.HasPrefix(lower, "inf"):
		return 3, false
	case strings.HasPrefix(lower, "nan"):
		return 3, true
	}
	return 0, false
}

// float reads the floating point conversions into an exact decimal first,
// so no digits are lost before the value is rounded to the slot's type.
func (s *scanner) float(d directive.Directive, sl Slot) error {
	s.skipSpace()
	r := s.rest(d.Width)
	if len(r) == 0 {
		if s.pos >= len(s.in) {
			return ErrInputExhausted
		}
		return ErrNoDigits
	}
	i := 0
	neg := false
	if r[0] == '+' || r[0] == '-' {
		neg = r[0] == '-'
		i++
	}
	var (
		z       dec.Dec
		special float64
	)
	n, nan := nonFinite(r[i:])
	switch {
	case n > 0 && nan:
		special = math.NaN()
	case n > 0:
		special = math.Inf(1)
		if neg {
			special = math.Inf(-1)
		}
	default:
		if n = z.ScanDecimal(r[i:], 0); n == 0 {
			return ErrNoDigits
		}
		if neg {
			z.Neg(&z)
		}
	}
	s.pos += i + n
	if d.Suppress {
		return nil
	}

	finite := special == 0
	switch sl.kind {
	case slotFloat64:
		if finite {
			*sl.f64, _ = z.Float64()
			if neg && z.Sign() == 0 {
				*sl.f64 = math.Copysign(0, -1)
			}
		} else {
			*sl.f64 = special
		}
	case slotFloat32:
		if finite {
			*sl.f32, _ = z.Float32()
			if neg && z.Sign() == 0 {
				*sl.f32 = float32(math.Copysign(0, -1))
			}
		} else {
			*sl.f32 = float32(special)
		}
	case slotDecimal:
		if !finite {
			return ErrRange
		}
		sl.d.Set(&z)
	default:
		return slotError(d, sl)
	}
	return nil
}
