// Package dec is the decimal engine of the directive codec. It implements
// an exact signed decimal type Dec, the rounding modes used to cut a Dec
// down to a requested number of digits, and the mutable digit sequences
// that the render and scan engines convert numbers through.
//
// Methods are typically of the form:
//
//	func (z *Dec) Op(x, y *Dec) *Dec
//
// and implement operations z = x Op y with the result as receiver; if it
// is one of the operands it may be overwritten (and its memory reused).
// To enable chaining of operations, the result is also returned. Methods
// returning a result other than *Dec take one of the operands as the receiver.
//
// Every finite float64 has an exact Dec representation (see SetFloat64), so
// digit extraction and rounding never depend on binary floating point.
package dec

// This file implements signed multi-precision decimals.

import (
	"fmt"
	"math/big"
	"unicode"
)

// A Dec represents a signed multi-precision decimal.
// It is stored as a combination of a multi-precision big.Int unscaled value
// and a fixed-precision scale of type Scale.
//
// The mathematical value of a Dec equals:
//
//	unscaled * 10**(-scale)
//
// Note that different Dec representations may have equal mathematical values.
//
//	unscaled  scale  String()
//	-------------------------
//	       0      0    "0"
//	       0      2    "0.00"
//	       1      0    "1"
//	     100      2    "1.00"
//	       1     -1   "10"
//
// The zero value for a Dec represents the value 0 with scale 0.
type Dec struct {
	unscaled big.Int
	scale    Scale
}

// Scale represents the type used for the scale of a Dec.
type Scale int32

var bigInt = [...]*big.Int{
	big.NewInt(0), big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4),
	big.NewInt(5), big.NewInt(6), big.NewInt(7), big.NewInt(8), big.NewInt(9),
	big.NewInt(10),
}

var exp10cache [64]big.Int = func() [64]big.Int {
	e10, e10i := [64]big.Int{}, bigInt[1]
	for i := range e10 {
		e10[i].Set(e10i)
		e10i = new(big.Int).Mul(e10i, bigInt[10])
	}
	return e10
}()

// NewDec allocates and returns a new Dec set to the given unscaled value and
// scale.
func NewDec(unscaled *big.Int, scale Scale) *Dec {
	return new(Dec).SetUnscaled(unscaled).SetScale(scale)
}

// NewDecInt64 allocates and returns a new Dec set to the given int64 value with
// scale 0.
func NewDecInt64(x int64) *Dec {
	return new(Dec).SetUnscaled(big.NewInt(x))
}

// Scale returns the scale of x.
func (x *Dec) Scale() Scale {
	return x.scale
}

// Unscaled returns the unscaled value of x.
func (x *Dec) Unscaled() *big.Int {
	return &x.unscaled
}

// SetScale sets the scale of x, with the unscaled value unchanged.
// The mathematical value of the Dec changes as if it was multiplied by
// 10**(oldscale-scale).
func (x *Dec) SetScale(scale Scale) *Dec {
	x.scale = scale
	return x
}

// SetUnscaled sets the unscaled value of x, with the scale unchanged.
func (x *Dec) SetUnscaled(unscaled *big.Int) *Dec {
	x.unscaled.Set(unscaled)
	return x
}

// Set sets z to the value of x and returns z.
// It does nothing if z == x.
func (z *Dec) Set(x *Dec) *Dec {
	if z != x {
		z.SetUnscaled(x.Unscaled())
		z.SetScale(x.Scale())
	}
	return z
}

// move sets z to the value of x, and sets x to zero, unless z == x.
// It is intended for fast assignment from temporary variables without copying
// the underlying array.
func (z *Dec) move(x *Dec) *Dec {
	if z != x {
		*z = *x
		*x = Dec{}
	}
	return z
}

// Sign returns:
//
//	-1 if x <  0
//	 0 if x == 0
//	+1 if x >  0
func (x *Dec) Sign() int {
	return x.Unscaled().Sign()
}

// Neg sets z to -x and returns z.
func (z *Dec) Neg(x *Dec) *Dec {
	z.SetScale(x.Scale())
	z.Unscaled().Neg(x.Unscaled())
	return z
}

// Abs sets z to |x| (the absolute value of x) and returns z.
func (z *Dec) Abs(x *Dec) *Dec {
	z.SetScale(x.Scale())
	z.Unscaled().Abs(x.Unscaled())
	return z
}

// Round sets z to x rounded to the scale s with r and returns z. If r
// gives no result, as RoundExact does for a value with more digits than s
// allows, Round returns nil and leaves z unchanged.
func (z *Dec) Round(x *Dec, s Scale, r Rounder) *Dec {
	q, rA, rB := new(Dec).quoRem(x, s, new(big.Int), new(big.Int))
	if !r.UseRemainder() {
		rA, rB = nil, nil
	}
	zz := r.Round(new(Dec), q, rA, rB)
	if zz == nil {
		return nil
	}
	return z.move(zz)
}

// quoRem sets z to x truncated toward zero at the scale s, and remNum and
// remDen to the dropped part. It returns z, remNum and remDen.
//
// The results satisfy:
//
//	x = z + (remNum/remDen) * 10**(-s)
func (z *Dec) quoRem(x *Dec, s Scale, remNum, remDen *big.Int) (*Dec, *big.Int, *big.Int) {
	num, den := x.Unscaled(), bigInt[1]
	switch shift := s - x.Scale(); {
	case shift > 0:
		num = new(big.Int).Mul(num, exp10(shift))
	case shift < 0:
		den = exp10(-shift)
	}
	z.SetScale(s)
	z.Unscaled().QuoRem(num, den, remNum)
	remDen.Set(den)
	return z, remNum, remDen
}

// exp10 returns 10**x. The result for small x is shared and must not be
// modified.
func exp10(x Scale) *big.Int {
	if int(x) < len(exp10cache) {
		return &exp10cache[int(x)]
	}
	return new(big.Int).Exp(bigInt[10], big.NewInt(int64(x)), nil)
}

var zeros = []byte("00000000000000000000000000000000" +
	"00000000000000000000000000000000")
var lzeros = Scale(len(zeros))

func appendZeros(s []byte, n Scale) []byte {
	for i := Scale(0); i < n; i += lzeros {
		if n > i+lzeros {
			s = append(s, zeros...)
		} else {
			s = append(s, zeros[0:n-i]...)
		}
	}
	return s
}

func (x *Dec) String() string {
	if x == nil {
		return "<nil>"
	}
	return string(x.appendString(nil))
}

func (x *Dec) appendString(dst []byte) []byte {
	if x.Sign() < 0 {
		dst = append(dst, '-')
	}
	s := appendNat(nil, x.Unscaled())
	scale := x.Scale()
	if scale <= 0 {
		dst = append(dst, s...)
		if scale != 0 && x.Sign() != 0 {
			dst = appendZeros(dst, -scale)
		}
		return dst
	}
	lens := Scale(len(s))
	if lens <= scale {
		dst = append(dst, '0', '.')
		dst = appendZeros(dst, scale-lens)
		return append(dst, s...)
	}
	dst = append(dst, s[:lens-scale]...)
	dst = append(dst, '.')
	return append(dst, s[lens-scale:]...)
}

// Format is a support routine for fmt.Formatter. It accepts the decimal
// formats 'd' and 'f', and handles both equivalently.
// Width, precision and flags are not supported; use the render package.
func (x *Dec) Format(s fmt.State, ch rune) {
	if ch != 'd' && ch != 'f' && ch != 'v' && ch != 's' {
		fmt.Fprintf(s, "%%!%c(dec.Dec=%s)", ch, x.String())
		return
	}
	s.Write([]byte(x.String()))
}

// SetString sets z to the value of s, interpreted as a signed decimal with an
// optional exponent, and returns z and a boolean indicating success. The
// scale of z is the number of digits after the decimal point (including any
// trailing 0s) less the exponent. If SetString fails, the value of z is
// undefined but the returned value is nil.
func (z *Dec) SetString(s string) (*Dec, bool) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := z.ScanDecimal(s, 0)
	if n == 0 || n != len(s) {
		return nil, false
	}
	if neg {
		z.Neg(z)
	}
	return z, true
}

// Scan is a support routine for fmt.Scanner; it sets z to the value of
// the scanned number. It accepts the formats 'd', 'f', 'e', 'g', 's' and 'v'
// and handles them equivalently.
func (z *Dec) Scan(s fmt.ScanState, ch rune) error {
	switch ch {
	case 'd', 'f', 'e', 'g', 's', 'v':
	default:
		return fmt.Errorf("Dec.Scan: invalid verb '%c'", ch)
	}
	tok, err := s.Token(true, func(r rune) bool {
		return !unicode.IsSpace(r)
	})
	if err != nil {
		return err
	}
	if _, ok := z.SetString(string(tok)); !ok {
		return fmt.Errorf("Dec.Scan: invalid decimal %q", tok)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (x *Dec) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	return x.appendString(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Dec) UnmarshalText(text []byte) error {
	if _, ok := z.SetString(string(text)); !ok {
		return fmt.Errorf("Dec.UnmarshalText: invalid decimal %q", text)
	}
	return nil
}
