package encoding

import (
	"io"
)

// ConstDecoder always returns the same value. It stands in for level streams
// that are not stored because their maximum is zero.
type ConstDecoder int32

func (d ConstDecoder) Init(_ io.Reader) error {
	return nil
}

func (d ConstDecoder) InitSize(_ io.Reader) error {
	return nil
}

func (d ConstDecoder) Next() (int32, error) {
	return int32(d), nil
}
