package dec

import "math/big"

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// AppendUint appends the digits of u in the given base (2 to 16) to dst and
// returns the extended buffer. Digits are produced least significant first
// by repeated division and then reversed in place. Zero yields "0".
func AppendUint(dst []byte, u uint64, base int, upper bool) []byte {
	if u == 0 {
		return append(dst, '0')
	}
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	start := len(dst)
	b := uint64(base)
	for u != 0 {
		dst = append(dst, digits[u%b])
		u /= b
	}
	reverse(dst[start:])
	return dst
}

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// chunkDigits is the number of decimal digits extracted per big.Int division.
const chunkDigits = 19

// appendNat appends the decimal digits of |x| to dst.
func appendNat(dst []byte, x *big.Int) []byte {
	if x.IsUint64() {
		return AppendUint(dst, x.Uint64(), 10, false)
	}
	q := new(big.Int).Abs(x)
	if q.IsUint64() {
		return AppendUint(dst, q.Uint64(), 10, false)
	}
	r := new(big.Int)
	var chunks []uint64
	for q.Sign() > 0 {
		q.QuoRem(q, exp10(chunkDigits), r)
		chunks = append(chunks, r.Uint64())
	}
	dst = AppendUint(dst, chunks[len(chunks)-1], 10, false)
	var tmp [chunkDigits]byte
	for i := len(chunks) - 2; i >= 0; i-- {
		d := AppendUint(tmp[:0], chunks[i], 10, false)
		dst = appendZeros(dst, Scale(chunkDigits-len(d)))
		dst = append(dst, d...)
	}
	return dst
}

// numDigits returns the number of decimal digits of |x|, or 0 for x == 0.
func numDigits(x *big.Int) int {
	b := x.BitLen()
	if b == 0 {
		return 0
	}
	// |x| >= 2**(b-1), which has floor((b-1)*log10(2))+1 digits
	n := int(float64(b-1)*0.30102999566398119521) + 1
	if n > 1 && x.CmpAbs(exp10(Scale(n-1))) < 0 {
		n--
	}
	if x.CmpAbs(exp10(Scale(n))) >= 0 {
		n++
	}
	return n
}
