package types

import (
	"io"

	"github.com/hexbee-net/cstable/encoding"
	"github.com/hexbee-net/cstable/record"
)

// Encoding BOOLEAN_BITPACKED //////////////////////////////////////////////////

// Encoder /////////////////////////////

type BooleanBitPackedEncoder struct {
	writer io.Writer
	data   *encoding.PackedArray
}

func (e *BooleanBitPackedEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errNilWriter
	}

	e.writer = writer
	e.data = &encoding.PackedArray{}

	return e.data.Reset(1)
}

func (e *BooleanBitPackedEncoder) EncodeValues(values []record.Value) error {
	for i := range values {
		if values[i].Kind() != record.KindBool {
			return kindError(values[i], record.KindBool)
		}

		var v int32
		if values[i].Bool() {
			v = 1
		}

		e.data.AppendSingle(v)
	}

	return nil
}

func (e *BooleanBitPackedEncoder) Close() error {
	e.data.Flush()
	return e.data.Write(e.writer)
}

// Decoder /////////////////////////////

// BooleanBitPackedDecoder reads one bit per value, least significant bit
// first. A partially consumed byte carries over to the next call.
type BooleanBitPackedDecoder struct {
	reader  io.Reader
	current [1]byte
	pos     uint
}

func (d *BooleanBitPackedDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errNilReader
	}

	d.reader = reader
	d.pos = 8

	return nil
}

func (d *BooleanBitPackedDecoder) DecodeValues(dest []record.Value) (int, error) {
	for i := range dest {
		if d.pos == 8 {
			if _, err := io.ReadFull(d.reader, d.current[:]); err != nil {
				return i, err
			}

			d.pos = 0
		}

		dest[i] = record.Bool(d.current[0]>>d.pos&1 == 1)
		d.pos++
	}

	return len(dest), nil
}
