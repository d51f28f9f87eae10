package types

import (
	"bufio"
	"io"

	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/errors"
)

func encodeValue(w io.Writer, enc ValuesEncoder, all []record.Value) error {
	if err := enc.Init(w); err != nil {
		return err
	}

	if err := enc.EncodeValues(all); err != nil {
		return err
	}

	return enc.Close()
}

func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return errors.Wrap(err, "failed to write values")
	}

	if n != len(buf) {
		return errors.WithFields(
			errors.WithStack(io.ErrShortWrite),
			errors.Fields{
				"expected": len(buf),
				"written":  n,
			})
	}

	return nil
}

func kindError(v record.Value, expected record.Kind) error {
	return errors.WithFields(
		errors.WithStack(errInvalidType),
		errors.Fields{
			"expected": expected.String(),
			"actual":   v.Kind().String(),
		})
}

func byteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}

	return bufio.NewReader(r)
}

// readFixed fills dest with values of size bytes each, converted by conv.
func readFixed(r io.Reader, dest []record.Value, size int, conv func([]byte) record.Value) (int, error) {
	buf := make([]byte, size)

	for i := range dest {
		if _, err := io.ReadFull(r, buf); err != nil {
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}

			return i, err
		}

		dest[i] = conv(buf)
	}

	return len(dest), nil
}

// skipFixed discards n values of size bytes each.
func skipFixed(r io.Reader, n, size int) (int, error) {
	skipped, err := io.CopyN(io.Discard, r, int64(n*size))

	return int(skipped) / size, err
}
