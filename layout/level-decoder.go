package layout

import (
	"bytes"

	"github.com/hexbee-net/cstable/encoding"
)

// LevelDecoder reads a repetition or definition level stream. Streams of
// columns whose maximum level is 0 are never persisted and decode as zeros.
type LevelDecoder struct {
	encoding.Decoder
	max uint32
}

func NewLevelDecoder(max uint32) *LevelDecoder {
	if max == 0 {
		return &LevelDecoder{Decoder: encoding.ConstDecoder(0)}
	}

	return &LevelDecoder{
		Decoder: encoding.NewHybridDecoder(encoding.BitWidth(max), false),
		max:     max,
	}
}

func (l *LevelDecoder) MaxLevel() uint32 {
	return l.max
}

// NextLevel returns the next level of the stream. The value is not checked
// against the maximum level.
func (l *LevelDecoder) NextLevel() (uint32, error) {
	v, err := l.Next()
	if err != nil {
		return 0, err
	}

	return uint32(v), nil
}

// EncodeLevels packs levels with the RLE/bit-packing hybrid at the width of max.
func EncodeLevels(levels []uint32, max uint32) ([]byte, error) {
	enc, err := encoding.NewHybridEncoder(encoding.BitWidth(max))
	if err != nil {
		return nil, err
	}

	for _, l := range levels {
		if err := enc.AppendSingle(int32(l)); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := enc.Write(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
