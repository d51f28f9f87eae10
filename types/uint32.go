package types

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hexbee-net/cstable/encoding"
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/errors"
)

func toUInt32(v record.Value) (uint32, error) {
	if v.Kind() != record.KindUInt {
		return 0, kindError(v, record.KindUInt)
	}

	if v.UInt() > math.MaxUint32 {
		return 0, errors.WithFields(
			errors.WithStack(errValueOutOfRange),
			errors.Fields{
				"value": v.UInt(),
				"max":   uint64(math.MaxUint32),
			})
	}

	return uint32(v.UInt()), nil
}

// Encoding UINT32_PLAIN ///////////////////////////////////////////////////////

// Encoder /////////////////////////////

type UInt32PlainEncoder struct {
	writer io.Writer
}

func (e *UInt32PlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errNilWriter
	}

	e.writer = writer

	return nil
}

func (e *UInt32PlainEncoder) EncodeValues(values []record.Value) error {
	buf := make([]byte, 4*len(values))

	for i := range values {
		u, err := toUInt32(values[i])
		if err != nil {
			return err
		}

		binary.LittleEndian.PutUint32(buf[4*i:], u)
	}

	return writeFull(e.writer, buf)
}

func (e *UInt32PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type UInt32PlainDecoder struct {
	reader io.Reader
}

func (d *UInt32PlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errNilReader
	}

	d.reader = reader

	return nil
}

func (d *UInt32PlainDecoder) DecodeValues(dest []record.Value) (count int, err error) {
	return readFixed(d.reader, dest, 4, func(b []byte) record.Value {
		return record.UInt(uint64(binary.LittleEndian.Uint32(b)))
	})
}

func (d *UInt32PlainDecoder) SkipValues(n int) (int, error) {
	return skipFixed(d.reader, n, 4)
}

// Encoding UINT32_BITPACKED ///////////////////////////////////////////////////
//
// One byte holding the bit width, followed by a RLE/bit-packing hybrid stream
// of the values at that width.

// Encoder /////////////////////////////

type UInt32BitPackedEncoder struct {
	writer io.Writer
	values []int32
	max    uint32
}

func (e *UInt32BitPackedEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errNilWriter
	}

	e.writer = writer
	e.values = e.values[:0]
	e.max = 0

	return nil
}

func (e *UInt32BitPackedEncoder) EncodeValues(values []record.Value) error {
	for i := range values {
		u, err := toUInt32(values[i])
		if err != nil {
			return err
		}

		if u > e.max {
			e.max = u
		}

		e.values = append(e.values, int32(u))
	}

	return nil
}

func (e *UInt32BitPackedEncoder) Close() error {
	width := encoding.BitWidth(e.max)

	enc, err := encoding.NewHybridEncoder(width)
	if err != nil {
		return err
	}

	if err := enc.Encode(e.values); err != nil {
		return err
	}

	if err := writeFull(e.writer, []byte{byte(width)}); err != nil {
		return err
	}

	return enc.Write(e.writer)
}

// Decoder /////////////////////////////

type UInt32BitPackedDecoder struct {
	reader  io.Reader
	decoder *encoding.HybridDecoder
}

func (d *UInt32BitPackedDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errNilReader
	}

	d.reader = reader
	d.decoder = nil

	return nil
}

func (d *UInt32BitPackedDecoder) DecodeValues(dest []record.Value) (count int, err error) {
	if d.decoder == nil {
		buf := []byte{0}
		if _, err := io.ReadFull(d.reader, buf); err != nil {
			return 0, err
		}

		if buf[0] > 32 {
			return 0, errors.WithFields(
				errors.WithStack(errValueOutOfRange),
				errors.Fields{
					"bit-width": int(buf[0]),
				})
		}

		d.decoder = encoding.NewHybridDecoder(int(buf[0]), false)
		if err := d.decoder.Init(d.reader); err != nil {
			return 0, err
		}
	}

	for i := range dest {
		v, err := d.decoder.Next()
		if err != nil {
			return i, err
		}

		dest[i] = record.UInt(uint64(uint32(v)))
	}

	return len(dest), nil
}
