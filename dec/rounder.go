package dec

import "math/big"

// Rounder represents a method for cutting an exact Dec down to a finite
// number of fraction digits. It is used by Dec.Round and by the digit
// generators FixedDigits, SciDigits and GeneralDigits.
type Rounder interface {

	// When UseRemainder() returns true, the Round() method is passed the
	// remainder of the division, expressed as the numerator and denominator of
	// a rational.
	UseRemainder() bool

	// Round sets the rounded value of a quotient to z, and returns z.
	// quo is the value truncated towards zero at the target scale.
	//
	// When the remainder is not used, remNum and remDen are nil.
	// When used, the remainder is normalized between -1 and 1; that is:
	//
	//	-|remDen| < remNum < |remDen|
	//
	// remDen is positive, and remNum is zero or has the sign of the value
	// being rounded.
	Round(z, quo *Dec, remNum, remDen *big.Int) *Dec
}

type rounder struct {
	useRem bool
	round  func(z, quo *Dec, remNum, remDen *big.Int) *Dec
}

func (r rounder) UseRemainder() bool {
	return r.useRem
}

func (r rounder) Round(z, quo *Dec, remNum, remDen *big.Int) *Dec {
	return r.round(z, quo, remNum, remDen)
}

// RoundExact returns quo if rem is zero, or nil otherwise.
var RoundExact Rounder = roundExact

// RoundDown rounds towards 0 (truncation).
//
//	   x    scale   result
//	------------------------
//	-0.18       1     -0.1
//	-0.15       1     -0.1
//	 0.15       1      0.1
//	 0.18       1      0.1
var RoundDown Rounder = roundDown

// RoundUp rounds away from 0.
//
//	   x    scale   result
//	------------------------
//	-0.12       1     -0.2
//	-0.10       1     -0.1
//	 0.10       1      0.1
//	 0.12       1      0.2
var RoundUp Rounder = roundUp

// RoundHalfDown rounds to the nearest Dec, and when the remainder is 1/2, it
// rounds to the Dec with the lower absolute value.
//
//	   x    scale   result
//	------------------------
//	-0.15       1     -0.1
//	 0.15       1      0.1
//	 0.18       1      0.2
var RoundHalfDown Rounder = roundHalfDown

// RoundHalfUp rounds to the nearest Dec, and when the remainder is 1/2, it
// rounds to the Dec with the greater absolute value. It matches the classic
// "next digit >= 5 carries" rule on a digit sequence.
//
//	   x    scale   result
//	------------------------
//	-0.15       1     -0.2
//	 0.12       1      0.1
//	 0.15       1      0.2
var RoundHalfUp Rounder = roundHalfUp

// RoundHalfEven rounds to the nearest Dec, and when the remainder is 1/2, it
// rounds to the Dec whose last digit is even. Native text formatters apply
// it to the exact value of binary floating point numbers.
//
//	   x    scale   result
//	------------------------
//	-0.25       1     -0.2
//	-0.15       1     -0.2
//	 0.15       1      0.2
//	 0.25       1      0.2
var RoundHalfEven Rounder = roundHalfEven

// RoundFloor rounds towards negative infinity.
var RoundFloor Rounder = roundFloor

// RoundCeil rounds towards positive infinity.
var RoundCeil Rounder = roundCeil

var intSign = []*big.Int{big.NewInt(-1), big.NewInt(0), big.NewInt(1)}

var roundExact = rounder{true,
	func(z, q *Dec, rA, rB *big.Int) *Dec {
		if rA.Sign() != 0 {
			return nil
		}
		return z.move(q)
	}}

var roundDown = rounder{false,
	func(z, q *Dec, rA, rB *big.Int) *Dec {
		return z.move(q)
	}}

var roundUp = rounder{true,
	func(z, q *Dec, rA, rB *big.Int) *Dec {
		z.move(q)
		if rA.Sign() != 0 {
			z.Unscaled().Add(z.Unscaled(), intSign[rA.Sign()*rB.Sign()+1])
		}
		return z
	}}

// halfCmp compares |rA/rB| with 1/2.
func halfCmp(rA, rB *big.Int) int {
	brA, brB := rA.BitLen(), rB.BitLen()
	if brA < brB-1 {
		// brA < brB-1 => |rA| < |rB/2|
		return -1
	}
	if brA > brB {
		return 1
	}
	rA2 := new(big.Int).Lsh(rA, 1)
	return rA2.CmpAbs(rB)
}

func roundHalf(adjust func(c int, q *Dec) bool) rounder {
	return rounder{true,
		func(z, q *Dec, rA, rB *big.Int) *Dec {
			z.move(q)
			if rA.Sign() == 0 {
				return z
			}
			if adjust(halfCmp(rA, rB), z) {
				z.Unscaled().Add(z.Unscaled(), intSign[rA.Sign()*rB.Sign()+1])
			}
			return z
		}}
}

var roundHalfDown = roundHalf(func(c int, q *Dec) bool {
	return c > 0
})

var roundHalfUp = roundHalf(func(c int, q *Dec) bool {
	return c >= 0
})

var roundHalfEven = roundHalf(func(c int, q *Dec) bool {
	return c > 0 || c == 0 && q.Unscaled().Bit(0) == 1
})

var roundFloor = rounder{true,
	func(z, q *Dec, rA, rB *big.Int) *Dec {
		z.move(q)
		if rA.Sign()*rB.Sign() < 0 {
			z.Unscaled().Add(z.Unscaled(), intSign[0])
		}
		return z
	}}

var roundCeil = rounder{true,
	func(z, q *Dec, rA, rB *big.Int) *Dec {
		z.move(q)
		if rA.Sign()*rB.Sign() > 0 {
			z.Unscaled().Add(z.Unscaled(), intSign[2])
		}
		return z
	}}

// roundsAway reports whether r moves the truncated quotient q away from zero
// given the remainder rA/rB. q is not modified.
func roundsAway(r Rounder, q *Dec, rA, rB *big.Int) bool {
	qq := new(Dec).Set(q)
	var z *Dec
	if r.UseRemainder() {
		z = r.Round(new(Dec), qq, rA, rB)
	} else {
		z = r.Round(new(Dec), qq, nil, nil)
	}
	return z != nil && z.Unscaled().CmpAbs(q.Unscaled()) != 0
}
