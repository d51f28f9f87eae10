package compression

import (
	"strings"

	"github.com/hexbee-net/errors"
)

const errUnsupportedCodec = errors.Error("compression codec not supported")

// BlockCompressor compresses whole page payloads.
type BlockCompressor interface {
	CompressBlock(block []byte) ([]byte, error)
	DecompressBlock(block []byte) ([]byte, error)
}

// Codec identifies the compression applied to page payloads. Values are
// persisted in page headers.
type Codec int32

const (
	CodecUncompressed Codec = 0
	CodecSnappy       Codec = 1
	CodecGZip         Codec = 2
	CodecLZ4          Codec = 3
	CodecZStd         Codec = 4
	CodecBrotli       Codec = 5
)

var codecNames = map[Codec]string{
	CodecUncompressed: "uncompressed",
	CodecSnappy:       "snappy",
	CodecGZip:         "gzip",
	CodecLZ4:          "lz4",
	CodecZStd:         "zstd",
	CodecBrotli:       "brotli",
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}

	return "unknown"
}

// ParseCodec returns the codec with the given name.
func ParseCodec(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return CodecUncompressed, nil
	}

	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}

	return 0, errors.WithFields(
		errors.WithStack(errUnsupportedCodec),
		errors.Fields{
			"codec": name,
		})
}

// New returns the compressor implementing codec.
func New(codec Codec) (BlockCompressor, error) {
	switch codec {
	case CodecUncompressed:
		return Plain{}, nil
	case CodecSnappy:
		return Snappy{}, nil
	case CodecGZip:
		return GZip{}, nil
	case CodecLZ4:
		return LZ4{}, nil
	case CodecZStd:
		return ZStd{}, nil
	case CodecBrotli:
		return Brotli{}, nil
	default:
		return nil, errors.WithFields(
			errors.WithStack(errUnsupportedCodec),
			errors.Fields{
				"codec": int32(codec),
			})
	}
}
