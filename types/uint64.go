package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/errors"
)

// Encoding UINT64_PLAIN ///////////////////////////////////////////////////////

// Encoder /////////////////////////////

type UInt64PlainEncoder struct {
	writer io.Writer
}

func (e *UInt64PlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errNilWriter
	}

	e.writer = writer

	return nil
}

func (e *UInt64PlainEncoder) EncodeValues(values []record.Value) error {
	buf := make([]byte, 8*len(values))

	for i := range values {
		if values[i].Kind() != record.KindUInt {
			return kindError(values[i], record.KindUInt)
		}

		binary.LittleEndian.PutUint64(buf[8*i:], values[i].UInt())
	}

	return writeFull(e.writer, buf)
}

func (e *UInt64PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type UInt64PlainDecoder struct {
	reader io.Reader
}

func (d *UInt64PlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errNilReader
	}

	d.reader = reader

	return nil
}

func (d *UInt64PlainDecoder) DecodeValues(dest []record.Value) (count int, err error) {
	return readFixed(d.reader, dest, 8, func(b []byte) record.Value {
		return record.UInt(binary.LittleEndian.Uint64(b))
	})
}

func (d *UInt64PlainDecoder) SkipValues(n int) (int, error) {
	return skipFixed(d.reader, n, 8)
}

// Encoding UINT64_LEB128 //////////////////////////////////////////////////////

// Encoder /////////////////////////////

type UInt64LEB128Encoder struct {
	writer io.Writer
	buf    []byte
}

func (e *UInt64LEB128Encoder) Init(writer io.Writer) error {
	if writer == nil {
		return errNilWriter
	}

	e.writer = writer

	return nil
}

func (e *UInt64LEB128Encoder) EncodeValues(values []record.Value) error {
	e.buf = e.buf[:0]

	for i := range values {
		if values[i].Kind() != record.KindUInt {
			return kindError(values[i], record.KindUInt)
		}

		e.buf = binary.AppendUvarint(e.buf, values[i].UInt())
	}

	return writeFull(e.writer, e.buf)
}

func (e *UInt64LEB128Encoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type UInt64LEB128Decoder struct {
	reader io.ByteReader
}

func (d *UInt64LEB128Decoder) Init(reader io.Reader) error {
	if reader == nil {
		return errNilReader
	}

	d.reader = byteReader(reader)

	return nil
}

func (d *UInt64LEB128Decoder) DecodeValues(dest []record.Value) (count int, err error) {
	for i := range dest {
		u, err := binary.ReadUvarint(d.reader)
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}

			if err != io.EOF {
				err = errors.Wrap(err, "failed to read leb128 value")
			}

			return i, err
		}

		dest[i] = record.UInt(u)
	}

	return len(dest), nil
}
