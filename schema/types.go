package schema

import (
	"strings"

	"github.com/hexbee-net/errors"
)

// Type is the logical type of a field. Values are persisted in table footers.
type Type int32

const (
	TypeObject      Type = 0
	TypeBoolean     Type = 1
	TypeUnsignedInt Type = 2
	TypeString      Type = 4
	TypeFloat       Type = 5
	// TypeDateTime holds microseconds since the unix epoch.
	TypeDateTime Type = 6
)

var typeNames = map[Type]string{
	TypeObject:      "object",
	TypeBoolean:     "boolean",
	TypeUnsignedInt: "uint",
	TypeString:      "string",
	TypeFloat:       "float",
	TypeDateTime:    "datetime",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return "unknown"
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType returns the type with the given name.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}

	return 0, errors.WithFields(
		errors.WithStack(ErrInvalidField),
		errors.Fields{
			"type": name,
		})
}

// Encoding is the physical encoding of a leaf column values. The set is closed
// and versioned with the file format.
type Encoding int32

const (
	// EncodingDefault picks the default encoding of the field type.
	EncodingDefault          Encoding = 0
	EncodingBooleanBitPacked Encoding = 1
	EncodingUInt32BitPacked  Encoding = 10
	EncodingUInt32Plain      Encoding = 11
	EncodingUInt64Plain      Encoding = 12
	EncodingUInt64LEB128     Encoding = 13
	EncodingFloatIEEE754     Encoding = 14
	EncodingStringPlain      Encoding = 100
)

var encodingNames = map[Encoding]string{
	EncodingBooleanBitPacked: "boolean_bitpacked",
	EncodingUInt32BitPacked:  "uint32_bitpacked",
	EncodingUInt32Plain:      "uint32_plain",
	EncodingUInt64Plain:      "uint64_plain",
	EncodingUInt64LEB128:     "uint64_leb128",
	EncodingFloatIEEE754:     "float_ieee754",
	EncodingStringPlain:      "string_plain",
}

func (e Encoding) String() string {
	if e == EncodingDefault {
		return "default"
	}

	if name, ok := encodingNames[e]; ok {
		return name
	}

	return "unknown"
}

// ParseEncoding returns the encoding with the given name.
func ParseEncoding(name string) (Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return EncodingDefault, nil
	}

	for e, n := range encodingNames {
		if n == name {
			return e, nil
		}
	}

	return 0, errors.WithFields(
		errors.WithStack(ErrUnsupportedEncoding),
		errors.Fields{
			"encoding": name,
		})
}

// DefaultEncoding returns the encoding used for t when none is set.
func DefaultEncoding(t Type) Encoding {
	switch t {
	case TypeBoolean:
		return EncodingBooleanBitPacked
	case TypeUnsignedInt, TypeDateTime:
		return EncodingUInt64LEB128
	case TypeFloat:
		return EncodingFloatIEEE754
	case TypeString:
		return EncodingStringPlain
	default:
		return EncodingDefault
	}
}

// Supports reports whether values of type t can be stored with encoding e.
func Supports(e Encoding, t Type) bool {
	switch e {
	case EncodingBooleanBitPacked:
		return t == TypeBoolean
	case EncodingUInt32BitPacked, EncodingUInt32Plain, EncodingUInt64Plain, EncodingUInt64LEB128:
		return t == TypeUnsignedInt || t == TypeDateTime
	case EncodingFloatIEEE754:
		return t == TypeFloat
	case EncodingStringPlain:
		return t == TypeString
	default:
		return false
	}
}
