package types

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hexbee-net/cstable/record"
)

// Encoding FLOAT_IEEE754 //////////////////////////////////////////////////////

// Encoder /////////////////////////////

type FloatIEEE754Encoder struct {
	writer io.Writer
}

func (e *FloatIEEE754Encoder) Init(writer io.Writer) error {
	if writer == nil {
		return errNilWriter
	}

	e.writer = writer

	return nil
}

func (e *FloatIEEE754Encoder) EncodeValues(values []record.Value) error {
	buf := make([]byte, 8*len(values))

	for i := range values {
		if values[i].Kind() != record.KindFloat {
			return kindError(values[i], record.KindFloat)
		}

		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(values[i].Float()))
	}

	return writeFull(e.writer, buf)
}

func (e *FloatIEEE754Encoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type FloatIEEE754Decoder struct {
	reader io.Reader
}

func (d *FloatIEEE754Decoder) Init(reader io.Reader) error {
	if reader == nil {
		return errNilReader
	}

	d.reader = reader

	return nil
}

func (d *FloatIEEE754Decoder) DecodeValues(dest []record.Value) (count int, err error) {
	return readFixed(d.reader, dest, 8, func(b []byte) record.Value {
		return record.Float(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	})
}

func (d *FloatIEEE754Decoder) SkipValues(n int) (int, error) {
	return skipFixed(d.reader, n, 8)
}
