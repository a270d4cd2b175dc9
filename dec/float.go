package dec

import (
	"math"
	"math/big"
	"math/bits"
)

// SetFloat64 sets z to the exact decimal value of f and returns z.
// A binary fraction m*2**-k equals m*5**k * 10**-k, so the conversion never
// rounds. The sign of negative zero is lost. SetFloat64 returns nil if f is
// NaN or an infinity.
func (z *Dec) SetFloat64(f float64) *Dec {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	frac, exp := math.Frexp(f)
	mant := int64(frac * (1 << 53))
	exp -= 53
	if mant == 0 {
		z.Unscaled().SetInt64(0)
		return z.SetScale(0)
	}
	neg := mant < 0
	if neg {
		mant = -mant
	}
	tz := bits.TrailingZeros64(uint64(mant))
	mant >>= uint(tz)
	exp += tz
	u := z.Unscaled().SetInt64(mant)
	if exp >= 0 {
		u.Lsh(u, uint(exp))
		z.SetScale(0)
	} else {
		u.Mul(u, new(big.Int).Exp(bigInt[5], big.NewInt(int64(-exp)), nil))
		z.SetScale(Scale(-exp))
	}
	if neg {
		u.Neg(u)
	}
	return z
}

// Rat returns the value of x as a rational number.
func (x *Dec) Rat() *big.Rat {
	if x.Scale() <= 0 {
		num := new(big.Int).Mul(x.Unscaled(), exp10(-x.Scale()))
		return new(big.Rat).SetInt(num)
	}
	return new(big.Rat).SetFrac(x.Unscaled(), exp10(x.Scale()))
}

// Exponent returns the base-10 exponent of the leading digit of x, that is
// floor(log10(|x|)), and 0 for x == 0. It is the exponent scientific
// notation normalizes x to.
func (x *Dec) Exponent() int {
	n := numDigits(x.Unscaled())
	if n == 0 {
		return 0
	}
	return n - 1 - int(x.Scale())
}

// Beyond these exponents every value rounds to an infinity or to zero in
// the binary formats, so the exact rational is not built.
const (
	maxFloatExp = 310
	minFloatExp = -330
)

// Float64 returns the float64 value nearest to x, and whether it is exact.
// Values too large in magnitude return an infinity, values too small return
// a zero of the same sign.
func (x *Dec) Float64() (float64, bool) {
	if x.Sign() == 0 {
		return 0, true
	}
	switch e := x.Exponent(); {
	case e > maxFloatExp:
		return math.Inf(x.Sign()), false
	case e < minFloatExp:
		return math.Copysign(0, float64(x.Sign())), false
	}
	return x.Rat().Float64()
}

// Float32 is like Float64 for float32.
func (x *Dec) Float32() (float32, bool) {
	if x.Sign() == 0 {
		return 0, true
	}
	switch e := x.Exponent(); {
	case e > maxFloatExp:
		return float32(math.Inf(x.Sign())), false
	case e < minFloatExp:
		return float32(math.Copysign(0, float64(x.Sign()))), false
	}
	return x.Rat().Float32()
}
