package compression

import (
	"sync"

	"github.com/hexbee-net/errors"
	"github.com/klauspost/compress/zstd"
)

// The zstd encoder and decoder are safe for concurrent EncodeAll/DecodeAll
// calls, so a single pair is shared by every page.
var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdErr     error
)

func zstdCodecs() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil)
		if zstdErr != nil {
			return
		}

		zstdDecoder, zstdErr = zstd.NewReader(nil)
	})

	return zstdEncoder, zstdDecoder, zstdErr
}

type ZStd struct {
}

func (c ZStd) CompressBlock(block []byte) ([]byte, error) {
	enc, _, err := zstdCodecs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zstd encoder")
	}

	return enc.EncodeAll(block, make([]byte, 0, len(block)/2)), nil
}

func (c ZStd) DecompressBlock(block []byte) ([]byte, error) {
	_, dec, err := zstdCodecs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zstd decoder")
	}

	ret, err := dec.DecodeAll(block, nil)
	if err != nil {
		return nil, decompressError(CodecZStd, block, err)
	}

	return ret, nil
}
