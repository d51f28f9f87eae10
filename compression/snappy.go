package compression

import (
	"github.com/golang/snappy"
	"github.com/hexbee-net/errors"
)

// Snappy uses the block format: the decoded length prefixes the data.
type Snappy struct {
}

func (c Snappy) CompressBlock(block []byte) ([]byte, error) {
	return snappy.Encode(nil, block), nil
}

func (c Snappy) DecompressBlock(block []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(block)
	if err != nil {
		return nil, decompressError(CodecSnappy, block, err)
	}

	ret, err := snappy.Decode(make([]byte, n), block)
	if err != nil {
		return nil, errors.WithFields(
			decompressError(CodecSnappy, block, err),
			errors.Fields{
				"decoded-size": n,
			})
	}

	return ret, nil
}
