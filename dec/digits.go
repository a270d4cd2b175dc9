package dec

import "math/big"

// Digits is a mutable sequence of decimal digits with an implied decimal
// point, produced from the magnitude of a Dec. In fixed form it reads
// buf[:point] "." buf[point:]. In scientific form point is 1 and the value
// is additionally scaled by 10**exp.
//
// Rounding is applied to the sequence (Increment) before trailing zeros
// are trimmed or the digits are written out.
type Digits struct {
	buf   []byte
	point int
	exp   int
	sci   bool
}

// Exp returns the exponent of a scientific digit sequence, 0 otherwise.
func (d *Digits) Exp() int {
	return d.exp
}

// Scientific reports whether d is in scientific form.
func (d *Digits) Scientific() bool {
	return d.sci
}

// Int returns the digits before the decimal point.
func (d *Digits) Int() []byte {
	return d.buf[:d.point]
}

// Frac returns the digits after the decimal point.
func (d *Digits) Frac() []byte {
	return d.buf[d.point:]
}

// Increment adds one unit in the last place. A carry past the most
// significant digit prepends a new leading 1; in scientific form the
// sequence keeps its length by dropping the last digit and the exponent
// grows by one, otherwise the decimal point moves right.
func (d *Digits) Increment() {
	for i := len(d.buf) - 1; i >= 0; i-- {
		if d.buf[i] != '9' {
			d.buf[i]++
			return
		}
		d.buf[i] = '0'
	}
	d.buf = append(d.buf, 0)
	copy(d.buf[1:], d.buf)
	d.buf[0] = '1'
	if d.sci {
		d.buf = d.buf[:len(d.buf)-1]
		d.exp++
		return
	}
	d.point++
}

// TrimZeros removes trailing zeros after the decimal point.
func (d *Digits) TrimZeros() {
	n := len(d.buf)
	for n > d.point && d.buf[n-1] == '0' {
		n--
	}
	d.buf = d.buf[:n]
}

// Append appends the text form of d to dst. The decimal point is written
// when fraction digits follow it or when point is set. A scientific
// sequence is followed by expChar, the exponent sign and at least two
// exponent digits.
func (d *Digits) Append(dst []byte, point bool, expChar byte) []byte {
	dst = append(dst, d.buf[:d.point]...)
	if d.point < len(d.buf) || point {
		dst = append(dst, '.')
		dst = append(dst, d.buf[d.point:]...)
	}
	if !d.sci {
		return dst
	}
	dst = append(dst, expChar)
	e := d.exp
	if e < 0 {
		dst = append(dst, '-')
		e = -e
	} else {
		dst = append(dst, '+')
	}
	if e < 10 {
		dst = append(dst, '0')
	}
	return AppendUint(dst, uint64(e), 10, false)
}

// String returns the digits in fixed or scientific text form.
func (d *Digits) String() string {
	return string(d.Append(nil, false, 'e'))
}

// truncate cuts x to scale s and reports whether r rounds it away from
// zero. The rounding decision is made on the signed value, so directed
// rounders see the sign; the returned quotient is the magnitude.
func truncate(x *Dec, s Scale, r Rounder) (*Dec, bool) {
	q, rA, rB := new(Dec).quoRem(x, s, new(big.Int), new(big.Int))
	away := roundsAway(r, q, rA, rB)
	return q.Abs(q), away
}

// FixedDigits returns the digits of |x| with prec digits after the decimal
// point, rounded with r.
func FixedDigits(x *Dec, prec int, r Rounder) *Digits {
	q, up := truncate(x, Scale(prec), r)
	d := &Digits{}
	digits := appendNat(nil, q.Unscaled())
	if q.Sign() == 0 {
		digits = digits[:0]
	}
	if pad := prec + 1 - len(digits); pad > 0 {
		d.buf = appendZeros(d.buf, Scale(pad))
	}
	d.buf = append(d.buf, digits...)
	d.point = len(d.buf) - prec
	if up {
		d.Increment()
	}
	return d
}

// SciDigits returns the digits of |x| in scientific form: one digit before
// the decimal point, prec after it, rounded with r. Zero has exponent 0.
func SciDigits(x *Dec, prec int, r Rounder) *Digits {
	d := &Digits{sci: true, point: 1}
	if x.Sign() == 0 {
		d.buf = appendZeros(d.buf, Scale(prec+1))
		return d
	}
	d.exp = x.Exponent()
	q, up := truncate(x, Scale(prec-d.exp), r)
	d.buf = appendNat(d.buf, q.Unscaled())
	if up {
		d.Increment()
	}
	return d
}

// GeneralDigits returns the digits of |x| for the general notation with
// prec significant digits (0 is taken as 1). Scientific form is chosen when
// the exponent after rounding is below -4 or at least prec; otherwise the
// value is in fixed form with prec-1-exp fraction digits. Unless keepZeros
// is set, trailing fraction zeros are removed.
func GeneralDigits(x *Dec, prec int, keepZeros bool, r Rounder) *Digits {
	if prec == 0 {
		prec = 1
	}
	d := SciDigits(x, prec-1, r)
	if e := d.exp; e >= -4 && e < prec {
		d = FixedDigits(x, prec-1-e, r)
	}
	if !keepZeros {
		d.TrimZeros()
	}
	return d
}
