package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

type GZip struct {
}

func (c GZip) CompressBlock(block []byte) ([]byte, error) {
	return compressStream(CodecGZip, block, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
}

func (c GZip) DecompressBlock(block []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(block))
	if err != nil {
		return nil, decompressError(CodecGZip, block, err)
	}
	defer r.Close()

	return decompressStream(CodecGZip, block, r)
}
