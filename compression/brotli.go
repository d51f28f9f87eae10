package compression

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli favours ratio over speed, which suits tables written once and
// published to object storage.
type Brotli struct {
	Level int
}

func (c Brotli) CompressBlock(block []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = brotli.DefaultCompression
	}

	return compressStream(CodecBrotli, block, func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriterLevel(w, level), nil
	})
}

func (c Brotli) DecompressBlock(block []byte) ([]byte, error) {
	return decompressStream(CodecBrotli, block, brotli.NewReader(bytes.NewReader(block)))
}
