package record

import (
	"fmt"
	"math"
)

// Kind tags the payload of a node.
type Kind uint8

const (
	KindObject Kind = iota
	KindString
	KindUInt
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindUInt:
		return "uint"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is a scalar payload. The zero Value is an empty object marker and
// never holds a scalar.
type Value struct {
	kind Kind
	str  string
	num  uint64
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func UInt(u uint64) Value {
	return Value{kind: KindUInt, num: u}
}

func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}

	return v
}

func Float(f float64) Value {
	return Value{kind: KindFloat, num: math.Float64bits(f)}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string payload, or "" for another kind.
func (v Value) Str() string {
	return v.str
}

// UInt returns the unsigned integer payload, or 0 for another kind.
func (v Value) UInt() uint64 {
	if v.kind != KindUInt {
		return 0
	}

	return v.num
}

func (v Value) Bool() bool {
	return v.kind == KindBool && v.num != 0
}

func (v Value) Float() float64 {
	if v.kind != KindFloat {
		return 0
	}

	return math.Float64frombits(v.num)
}

// Equal compares kind and payload. Floats compare by bit pattern so NaN values
// round-trip.
func (v Value) Equal(other Value) bool {
	return v == other
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindUInt:
		return fmt.Sprintf("%d", v.num)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case KindFloat:
		return fmt.Sprintf("%g", v.Float())
	default:
		return "{}"
	}
}
