package compression

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4"
)

// LZ4 uses the framed format, so the decompressed size is not stored next to
// the block.
type LZ4 struct {
}

func (c LZ4) CompressBlock(block []byte) ([]byte, error) {
	return compressStream(CodecLZ4, block, func(w io.Writer) (io.WriteCloser, error) {
		return lz4.NewWriter(w), nil
	})
}

func (c LZ4) DecompressBlock(block []byte) ([]byte, error) {
	return decompressStream(CodecLZ4, block, lz4.NewReader(bytes.NewReader(block)))
}
