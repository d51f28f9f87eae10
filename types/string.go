package types

import (
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/errors"
)

// Encoding STRING_PLAIN ///////////////////////////////////////////////////////

// Encoder /////////////////////////////

type StringPlainEncoder struct {
	writer io.Writer
}

func (e *StringPlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errNilWriter
	}

	e.writer = writer

	return nil
}

func (e *StringPlainEncoder) writeString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return errors.WithFields(
			errors.WithStack(errValueOutOfRange),
			errors.Fields{
				"length": len(s),
			})
	}

	l := make([]byte, 4)
	binary.LittleEndian.PutUint32(l, uint32(len(s)))

	if err := writeFull(e.writer, l); err != nil {
		return err
	}

	return writeFull(e.writer, []byte(s))
}

func (e *StringPlainEncoder) EncodeValues(values []record.Value) error {
	for i := range values {
		if values[i].Kind() != record.KindString {
			return kindError(values[i], record.KindString)
		}

		if err := e.writeString(values[i].Str()); err != nil {
			return err
		}
	}

	return nil
}

func (e *StringPlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type StringPlainDecoder struct {
	reader io.Reader
}

func (d *StringPlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errNilReader
	}

	d.reader = reader

	return nil
}

func (d *StringPlainDecoder) next() (string, error) {
	var l uint32
	if err := binary.Read(d.reader, binary.LittleEndian, &l); err != nil {
		return "", err
	}

	// the length prefix is untrusted, so it is never used to size a buffer
	// beyond what the reader holds
	if lr, ok := d.reader.(interface{ Len() int }); ok && uint64(l) > uint64(lr.Len()) {
		return "", errors.WithFields(
			errors.WithStack(io.ErrUnexpectedEOF),
			errors.Fields{
				"length":    l,
				"remaining": lr.Len(),
			})
	}

	var buf strings.Builder
	if _, err := io.CopyN(&buf, d.reader, int64(l)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}

		return "", errors.Wrap(err, "failed to read string value")
	}

	return buf.String(), nil
}

func (d *StringPlainDecoder) DecodeValues(dest []record.Value) (count int, err error) {
	for i := range dest {
		s, err := d.next()
		if err != nil {
			return i, err
		}

		dest[i] = record.String(s)
	}

	return len(dest), nil
}

func (d *StringPlainDecoder) SkipValues(n int) (int, error) {
	for i := 0; i < n; i++ {
		var l uint32
		if err := binary.Read(d.reader, binary.LittleEndian, &l); err != nil {
			return i, err
		}

		if _, err := io.CopyN(io.Discard, d.reader, int64(l)); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}

			return i, errors.Wrap(err, "failed to skip string value")
		}
	}

	return n, nil
}
