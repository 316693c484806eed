package record

import (
	"math"
	"strconv"

	"github.com/wippyai/msgc/types"
)

// Value is one scalar as the raw bit pattern it occupies on the wire,
// zero-extended to 64 bits.
type Value struct {
	Type *types.Primitive
	Bits uint64
}

func mask(width uint32) uint64 {
	if width >= 8 {
		return math.MaxUint64
	}
	return (uint64(1) << (width * 8)) - 1
}

// FromBits truncates bits to the width of p.
func FromBits(p *types.Primitive, bits uint64) Value {
	return Value{Type: p, Bits: bits & mask(p.Width)}
}

// FromInt stores v in two's complement, truncated to the width of p.
func FromInt(p *types.Primitive, v int64) Value {
	return FromBits(p, uint64(v))
}

func FromUint(p *types.Primitive, v uint64) Value {
	return FromBits(p, v)
}

// FromFloat stores v as an IEEE 754 value of the width of p. Narrowing to
// float32 rounds.
func FromFloat(p *types.Primitive, v float64) Value {
	if p.Width == 4 {
		return Value{Type: p, Bits: uint64(math.Float32bits(float32(v)))}
	}
	return Value{Type: p, Bits: math.Float64bits(v)}
}

// Int returns the value sign-extended from its width.
func (v Value) Int() int64 {
	shift := 64 - v.Type.Bits()
	return int64(v.Bits<<shift) >> shift
}

func (v Value) Uint() uint64 {
	return v.Bits
}

func (v Value) Float() float64 {
	if v.Type.Width == 4 {
		return float64(math.Float32frombits(uint32(v.Bits)))
	}
	return math.Float64frombits(v.Bits)
}

// String formats the value according to its class.
func (v Value) String() string {
	switch v.Type.Class {
	case types.Signed:
		return strconv.FormatInt(v.Int(), 10)
	case types.Unsigned:
		return strconv.FormatUint(v.Uint(), 10)
	case types.Float:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type.Bits())
	}
	return strconv.FormatUint(v.Bits, 16)
}
