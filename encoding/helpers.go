package encoding

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hexbee-net/errors"
)

// byteReader adapts a plain reader for the varint helpers of encoding/binary.
type byteReader struct {
	io.Reader
	b [1]byte
}

func (r *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.Reader, r.b[:]); err != nil {
		return 0, err
	}

	return r.b[0], nil
}

func readUVarInt32(r io.Reader) (int32, error) {
	b, ok := r.(io.ByteReader)
	if !ok {
		b = &byteReader{Reader: r}
	}

	i, err := binary.ReadUvarint(b)
	if err != nil {
		return 0, err
	}

	if i > math.MaxInt32 {
		return 0, errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"varint": i,
			})
	}

	return int32(i), nil
}

func appendUVarInt64(buf []byte, in uint64) []byte {
	return binary.AppendUvarint(buf, in)
}

// writeFull writes the whole buffer, failing on short writes.
func writeFull(w io.Writer, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	if w == nil {
		return errors.WithStack(errNilWriter)
	}

	n, err := w.Write(buf)
	if err != nil {
		return errors.Wrap(err, "failed to write encoded values")
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
