package dec

import "math/big"

// DigitValue returns the value of the digit or letter c in bases up to 16,
// or 16 when c is not such a digit.
func DigitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 16
}

// ScanUint accumulates v = v*base + digit over the leading digits of s that
// are valid in base, reading at most width bytes (all of s if width <= 0).
// Once the value would exceed limit it saturates at limit; the remaining
// digits are still consumed. It returns the value, the number of bytes
// consumed and whether the value saturated.
func ScanUint(s string, base, width int, limit uint64) (v uint64, n int, saturated bool) {
	if width <= 0 || width > len(s) {
		width = len(s)
	}
	b := uint64(base)
	for ; n < width; n++ {
		dv := DigitValue(s[n])
		if dv >= base {
			break
		}
		if saturated {
			continue
		}
		d := uint64(dv)
		if d > limit || v > (limit-d)/b {
			v, saturated = limit, true
			continue
		}
		v = v*b + d
	}
	return v, n, saturated
}

// maxScanExp bounds the exponent accepted by ScanDecimal; larger exponents
// saturate.
const maxScanExp = 1 << 24

// ScanDecimal reads an unsigned decimal number from the start of s: digits
// with an optional decimal point, then an optional exponent made of 'e' or
// 'E', an optional sign and digits. At most width bytes are read (all of s
// if width <= 0). An exponent marker that is not followed by digits is not
// consumed.
//
// z is set to the exact value, with the scale equal to the number of
// fraction digits less the exponent. ScanDecimal returns the number of bytes
// consumed, or 0 (leaving z unchanged) if s does not start with a number.
func (z *Dec) ScanDecimal(s string, width int) int {
	if width <= 0 || width > len(s) {
		width = len(s)
	}
	s = s[:width]
	var (
		digits []byte
		point  = -1
		n      int
	)
loop:
	for ; n < len(s); n++ {
		switch c := s[n]; {
		case c == '.':
			if point >= 0 {
				break loop
			}
			point = len(digits)
		case '0' <= c && c <= '9':
			digits = append(digits, c)
		default:
			break loop
		}
	}
	if len(digits) == 0 {
		return 0
	}
	scale := 0
	if point >= 0 {
		scale = len(digits) - point
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		i := n + 1
		neg := false
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			neg = s[i] == '-'
			i++
		}
		e, m, _ := ScanUint(s[i:], 10, 0, maxScanExp)
		if m > 0 {
			if neg {
				scale += int(e)
			} else {
				scale -= int(e)
			}
			n = i + m
		}
	}
	setDigits(z.Unscaled(), digits)
	z.SetScale(Scale(scale))
	return n
}

// setDigits sets z to the value of the decimal digit string digits,
// accumulating chunkDigits digits at a time.
func setDigits(z *big.Int, digits []byte) *big.Int {
	z.SetInt64(0)
	chunk := new(big.Int)
	for len(digits) > 0 {
		k := len(digits)
		if k > chunkDigits {
			k = chunkDigits
		}
		var v uint64
		for _, c := range digits[:k] {
			v = v*10 + uint64(c-'0')
		}
		z.Mul(z, exp10(Scale(k)))
		z.Add(z, chunk.SetUint64(v))
		digits = digits[k:]
	}
	return z
}
