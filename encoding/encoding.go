package encoding

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errNilWriter       = errors.Error("writer is nil")
	errNilReader       = errors.Error("reader is nil")
	errInvalidBitWidth = errors.Error("invalid bit-width")
	errOutOfRange      = errors.Error("out of range")
	errEmptyRun        = errors.Error("empty run")
)

// Decoder reads a stream of small integers, typically repetition or
// definition levels.
type Decoder interface {
	Init(io.Reader) error
	InitSize(io.Reader) error

	Next() (int32, error)
}

// BitWidth returns the number of bits needed to store every value in [0, max].
func BitWidth(max uint32) int {
	w := 0
	for max != 0 {
		w++
		max >>= 1
	}

	return w
}
