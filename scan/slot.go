package scan

import (
	"math"
	"unsafe"

	"gopkg.in/dfmt.v0/dec"
)

type slotKind uint8

const (
	slotNone slotKind = iota
	slotInt
	slotUint
	slotFloat32
	slotFloat64
	slotDecimal
	slotByte
	slotRune
	slotString
	slotPointer
)

var slotKindNames = [...]string{
	slotNone:    "none",
	slotInt:     "int",
	slotUint:    "uint",
	slotFloat32: "float32",
	slotFloat64: "float64",
	slotDecimal: "decimal",
	slotByte:    "byte",
	slotRune:    "rune",
	slotString:  "string",
	slotPointer: "pointer",
}

func (k slotKind) String() string {
	if int(k) < len(slotKindNames) {
		return slotKindNames[k]
	}
	return "unknown"
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// A Slot is one destination of a scan call. The slot's own type fixes the
// width of the stored value; values outside its range saturate.
type Slot struct {
	kind    slotKind
	setInt  func(int64)
	setUint func(uint64)
	f32     *float32
	f64     *float64
	d       *dec.Dec
	b       *byte
	r       *rune
	s       *string
	p       *uintptr
}

// Int returns a slot for a signed integer, written by d, i and n and, as
// the same-width two's complement value, by u, o and x.
func Int[T signed](p *T) Slot {
	bits := uint(unsafe.Sizeof(*p)) * 8
	hi := int64(math.MaxInt64 >> (64 - bits))
	lo := -hi - 1
	return Slot{kind: slotInt, setInt: func(v int64) {
		*p = T(min(max(v, lo), hi))
	}}
}

// Uint returns a slot for an unsigned integer.
func Uint[T unsigned](p *T) Slot {
	bits := uint(unsafe.Sizeof(*p)) * 8
	hi := uint64(math.MaxUint64 >> (64 - bits))
	return Slot{kind: slotUint, setUint: func(v uint64) {
		*p = T(min(v, hi))
	}}
}

// Float32 returns a slot for a float32.
func Float32(p *float32) Slot {
	return Slot{kind: slotFloat32, f32: p}
}

// Float64 returns a slot for a float64.
func Float64(p *float64) Slot {
	return Slot{kind: slotFloat64, f64: p}
}

// Decimal returns a slot for an exact decimal; the value is kept with all
// the digits read.
func Decimal(p *dec.Dec) Slot {
	return Slot{kind: slotDecimal, d: p}
}

// Byte returns a slot for one byte character, written by %c.
func Byte(p *byte) Slot {
	return Slot{kind: slotByte, b: p}
}

// Rune returns a slot for one character, written by %c and %lc.
func Rune(p *rune) Slot {
	return Slot{kind: slotRune, r: p}
}

// String returns a slot for text, written by %s, %c and %lc.
func String(p *string) Slot {
	return Slot{kind: slotString, s: p}
}

// Pointer returns a slot for %p.
func Pointer(p *uintptr) Slot {
	return Slot{kind: slotPointer, p: p}
}
