package types

import (
	"io"
	"math"

	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/errors"
)

const (
	errInvalidType     = errors.Error("invalid type")
	errNilWriter       = errors.Error("writer is nil")
	errNilReader       = errors.Error("reader is nil")
	errValueOutOfRange = errors.Error("value out of range")
)

// ErrValueOutOfRange is returned for values the column encoding cannot hold.
const ErrValueOutOfRange = errValueOutOfRange

type ValuesEncoder interface {
	io.Closer

	Init(io.Writer) error
	EncodeValues(values []record.Value) error
}

type ValuesDecoder interface {
	Init(io.Reader) error

	// the error io.EOF with the less value is acceptable, any other error is not
	DecodeValues(dest []record.Value) (count int, err error)
}

// ValuesSkipper is implemented by decoders that can step over values without
// decoding them.
type ValuesSkipper interface {
	SkipValues(n int) (count int, err error)
}

// NewEncoder returns the value encoder for the encoding e of type t.
func NewEncoder(e schema.Encoding, t schema.Type) (ValuesEncoder, error) {
	if err := check(e, t); err != nil {
		return nil, err
	}

	switch e {
	case schema.EncodingBooleanBitPacked:
		return &BooleanBitPackedEncoder{}, nil
	case schema.EncodingUInt32BitPacked:
		return &UInt32BitPackedEncoder{}, nil
	case schema.EncodingUInt32Plain:
		return &UInt32PlainEncoder{}, nil
	case schema.EncodingUInt64Plain:
		return &UInt64PlainEncoder{}, nil
	case schema.EncodingUInt64LEB128:
		return &UInt64LEB128Encoder{}, nil
	case schema.EncodingFloatIEEE754:
		return &FloatIEEE754Encoder{}, nil
	default:
		return &StringPlainEncoder{}, nil
	}
}

// NewDecoder returns the value decoder for the encoding e of type t.
func NewDecoder(e schema.Encoding, t schema.Type) (ValuesDecoder, error) {
	if err := check(e, t); err != nil {
		return nil, err
	}

	switch e {
	case schema.EncodingBooleanBitPacked:
		return &BooleanBitPackedDecoder{}, nil
	case schema.EncodingUInt32BitPacked:
		return &UInt32BitPackedDecoder{}, nil
	case schema.EncodingUInt32Plain:
		return &UInt32PlainDecoder{}, nil
	case schema.EncodingUInt64Plain:
		return &UInt64PlainDecoder{}, nil
	case schema.EncodingUInt64LEB128:
		return &UInt64LEB128Decoder{}, nil
	case schema.EncodingFloatIEEE754:
		return &FloatIEEE754Decoder{}, nil
	default:
		return &StringPlainDecoder{}, nil
	}
}

func check(e schema.Encoding, t schema.Type) error {
	if !schema.Supports(e, t) {
		return errors.WithFields(
			errors.WithStack(schema.ErrUnsupportedEncoding),
			errors.Fields{
				"encoding": e.String(),
				"type":     t.String(),
			})
	}

	return nil
}

// CheckValue reports whether v can be stored with encoding e, so that
// encoding a page never fails on a value accepted by a column writer.
func CheckValue(e schema.Encoding, v record.Value) error {
	switch e {
	case schema.EncodingUInt32BitPacked, schema.EncodingUInt32Plain:
		if v.Kind() == record.KindUInt {
			_, err := toUInt32(v)
			return err
		}

	case schema.EncodingStringPlain:
		if v.Kind() == record.KindString && uint64(len(v.Str())) > math.MaxUint32 {
			return errors.WithFields(
				errors.WithStack(errValueOutOfRange),
				errors.Fields{
					"length": len(v.Str()),
				})
		}
	}

	return nil
}

// Kind returns the record value kind stored by columns of type t.
func Kind(t schema.Type) record.Kind {
	switch t {
	case schema.TypeBoolean:
		return record.KindBool
	case schema.TypeUnsignedInt, schema.TypeDateTime:
		return record.KindUInt
	case schema.TypeFloat:
		return record.KindFloat
	case schema.TypeString:
		return record.KindString
	default:
		return record.KindObject
	}
}
