package vm

import (
	"fmt"
	"math"
)

// Kind tags the scalar type a Value currently holds, per spec.md §3's
// "tagged union over u8/u16/u32/u64/i8/i16/i32/i64/f32/f64 at the decoding
// layer" register description.
type Kind uint8

const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindF32
	KindF64
)

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool { return k == KindF32 || k == KindF64 }

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	default:
		return false
	}
}

// Value is a register-file slot: a Kind tag plus its bit pattern, stored
// uniformly in a uint64 so the register file can stay a flat array rather
// than an interface slice (the teacher's CPU.R is a flat [15]uint32; this
// generalizes the same flat-storage idea to a tagged union).
type Value struct {
	Kind Kind
	bits uint64
}

// ZeroValue returns a Value of kind k holding the zero bit pattern.
func ZeroValue(k Kind) Value { return Value{Kind: k} }

func NewUint(k Kind, v uint64) Value { return Value{Kind: k, bits: v} }

func NewInt(k Kind, v int64) Value { return Value{Kind: k, bits: uint64(v)} }

func NewFloat32(v float32) Value {
	return Value{Kind: KindF32, bits: uint64(math.Float32bits(v))}
}

func NewFloat64(v float64) Value {
	return Value{Kind: KindF64, bits: math.Float64bits(v)}
}

// Uint64 reinterprets the stored bit pattern as an unsigned integer,
// regardless of Kind (used for addresses and bitwise opcodes).
func (v Value) Uint64() uint64 { return v.bits }

// Int64 widens the stored bit pattern according to Kind's width: signed
// kinds are sign-extended, unsigned kinds zero-extended.
func (v Value) Int64() int64 {
	switch v.Kind {
	case KindI8:
		return int64(int8(v.bits))
	case KindI16:
		return int64(int16(v.bits))
	case KindI32:
		return int64(int32(v.bits))
	case KindU8:
		return int64(uint8(v.bits))
	case KindU16:
		return int64(uint16(v.bits))
	case KindU32:
		return int64(uint32(v.bits))
	default:
		return int64(v.bits)
	}
}

// Float64 reinterprets the stored bit pattern as a float, widening f32 to
// f64 when necessary.
func (v Value) Float64() float64 {
	if v.Kind == KindF32 {
		return float64(math.Float32frombits(uint32(v.bits)))
	}
	return math.Float64frombits(v.bits)
}

func (v Value) String() string {
	switch {
	case v.Kind.IsFloat():
		return fmt.Sprintf("%s(%g)", v.Kind, v.Float64())
	case v.Kind.IsSigned():
		return fmt.Sprintf("%s(%d)", v.Kind, v.Int64())
	default:
		return fmt.Sprintf("%s(%d)", v.Kind, v.Uint64())
	}
}
