package compression

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"
)

// compressStream pushes block through a streaming compressor.
func compressStream(codec Codec, block []byte, newWriter func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(block)/2))

	w, err := newWriter(buf)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to create compressor"),
			errors.Fields{
				"codec": codec.String(),
			})
	}

	if _, err := w.Write(block); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to compress block"),
			errors.Fields{
				"codec": codec.String(),
			})
	}

	if err := w.Close(); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to flush compressed block"),
			errors.Fields{
				"codec": codec.String(),
			})
	}

	return buf.Bytes(), nil
}

// decompressStream drains r, a decompressor reading from block.
func decompressStream(codec Codec, block []byte, r io.Reader) ([]byte, error) {
	ret, err := io.ReadAll(r)
	if err != nil {
		return nil, decompressError(codec, block, err)
	}

	return ret, nil
}

func decompressError(codec Codec, block []byte, err error) error {
	return errors.WithFields(
		errors.Wrap(err, "failed to decompress block"),
		errors.Fields{
			"codec":           codec.String(),
			"compressed-size": len(block),
		})
}
