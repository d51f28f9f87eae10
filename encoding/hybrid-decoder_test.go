package encoding

import (
	"bytes"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestHybridDecoder_GroupBoundary(t *testing.T) {
	b := []byte{
		(1 << 1) | 1,
		(1 << 0) | (2 << 2) | (3 << 4),
		0,
	}

	d := NewHybridDecoder(2, false)

	reader := bytes.NewReader(b)
	require.NoError(t, d.Init(reader))

	v, err := d.Next()
	assert.Equal(t, int32(1), v)
	assert.NoError(t, err)

	v, err = d.Next()
	assert.Equal(t, int32(2), v)
	assert.NoError(t, err)

	v, err = d.Next()
	assert.Equal(t, int32(3), v)
	assert.NoError(t, err)

	assert.Equal(t, 0, reader.Len())
}

func TestHybridDecoder_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		bitWidth int
		values   []int32
	}{
		{"empty", 1, nil},
		{"single", 1, []int32{1}},
		{"levels", 2, []int32{0, 1, 2, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}},
		{"long-rle", 3, repeat(5, 1000)},
		{"wide", 17, []int32{1 << 16, 3, 1<<17 - 1, 0, 42, 42, 42, 42, 42, 42, 42, 42, 42}},
		{"zero-width", 0, repeat(0, 13)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := NewHybridEncoder(tt.bitWidth)
			require.NoError(t, err)
			require.NoError(t, e.Encode(tt.values))

			buf := &bytes.Buffer{}
			require.NoError(t, e.Write(buf))

			d := NewHybridDecoder(tt.bitWidth, true)
			require.NoError(t, d.Init(buf))

			for i, want := range tt.values {
				v, err := d.Next()
				require.NoError(t, err, "value %d", i)
				assert.Equal(t, want, v, "value %d", i)
			}
		})
	}
}

func TestHybridDecoder_EmptyRun(t *testing.T) {
	t.Parallel()

	d := NewHybridDecoder(2, false)
	require.NoError(t, d.Init(bytes.NewReader([]byte{0})))

	_, err := d.Next()
	assert.EqualError(t, errors.Cause(err), errEmptyRun.Error())
}

func TestHybridDecoder_TruncatedBitPackedRun(t *testing.T) {
	t.Parallel()

	d := NewHybridDecoder(3, false)
	require.NoError(t, d.Init(bytes.NewReader([]byte{(1 << 1) | 1, 0xff})))

	_, err := d.Next()
	assert.Error(t, err)
}

func TestHybridEncoder_OutOfRange(t *testing.T) {
	t.Parallel()

	e, err := NewHybridEncoder(2)
	require.NoError(t, err)

	err = e.AppendSingle(4)
	assert.EqualError(t, errors.Cause(err), errOutOfRange.Error())
}

func TestBitWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, BitWidth(0))
	assert.Equal(t, 1, BitWidth(1))
	assert.Equal(t, 2, BitWidth(2))
	assert.Equal(t, 2, BitWidth(3))
	assert.Equal(t, 3, BitWidth(4))
	assert.Equal(t, 32, BitWidth(1<<31))
}

func repeat(v int32, n int) []int32 {
	res := make([]int32, n)
	for i := range res {
		res[i] = v
	}

	return res
}
