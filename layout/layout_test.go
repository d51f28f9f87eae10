package layout

import (
	"bytes"
	"testing"

	"github.com/hexbee-net/cstable/compression"
	"github.com/hexbee-net/cstable/pagestore"
	"github.com/hexbee-net/cstable/source/memory"
	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func newStore(t *testing.T) *pagestore.Store {
	t.Helper()

	s, err := pagestore.New(memory.NewFile(nil))
	require.NoError(t, err)

	return s
}

func TestPageHeader_RoundTrip(t *testing.T) {
	t.Parallel()

	h := &PageHeader{
		Codec:            int32(compression.CodecZStd),
		NumValues:        42,
		UncompressedSize: 1000,
		CompressedSize:   -1,
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(h, buf))

	res := &PageHeader{}
	require.NoError(t, ReadThrift(res, buf))
	assert.Equal(t, h, res)
	assert.Equal(t, 0, buf.Len())
}

func TestBlock_RoundTrip(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("column data "), 100)

	for _, codec := range []compression.Codec{
		compression.CodecUncompressed,
		compression.CodecSnappy,
		compression.CodecGZip,
		compression.CodecLZ4,
		compression.CodecZStd,
		compression.CodecBrotli,
	} {
		codec := codec
		t.Run(codec.String(), func(t *testing.T) {
			t.Parallel()

			store := newStore(t)

			w, err := NewBlockWriter(store, codec)
			require.NoError(t, err)
			assert.Equal(t, codec, w.Codec())

			page, err := w.WriteBlock(payload, 300)
			require.NoError(t, err)
			assert.Equal(t, uint32(0), page.Size%pagestore.SectorSize)

			empty, err := w.WriteBlock(nil, 0)
			require.NoError(t, err)
			assert.True(t, empty.Offset >= page.End())

			r := NewBlockReader(store)

			header, data, err := r.ReadBlock(page)
			require.NoError(t, err)
			assert.Equal(t, int32(300), header.NumValues)
			assert.Equal(t, int32(codec), header.Codec)
			assert.Equal(t, payload, data)

			header, data, err = r.ReadBlock(empty)
			require.NoError(t, err)
			assert.Equal(t, int32(0), header.NumValues)
			assert.Equal(t, 0, len(data))
		})
	}
}

func TestBlockReader_InvalidBlock(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	page, err := store.Alloc(1)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, WriteThrift(&PageHeader{NumValues: 1, UncompressedSize: 10, CompressedSize: 4096}, buf))
	require.NoError(t, store.Write(page, 0, buf.Bytes()))

	_, _, err = NewBlockReader(store).ReadBlock(page)
	assert.Equal(t, errInvalidBlock, errors.Cause(err))
}

func TestNewBlockWriter_UnsupportedCodec(t *testing.T) {
	t.Parallel()

	_, err := NewBlockWriter(newStore(t), compression.Codec(99))
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	t.Parallel()

	idx := NewIndex()
	idx.Add(2, KindData, pagestore.PageRef{Offset: 2048, Size: 512})
	idx.Add(1, KindData, pagestore.PageRef{Offset: 1024, Size: 512})
	idx.Add(1, KindRepetition, pagestore.PageRef{Offset: 512, Size: 512})
	idx.Add(1, KindData, pagestore.PageRef{Offset: 1536, Size: 512})

	assert.Equal(t, []pagestore.PageRef{{Offset: 1024, Size: 512}, {Offset: 1536, Size: 512}}, idx.Pages(1, KindData))
	assert.Nil(t, idx.Pages(1, KindDefinition))

	assert.Equal(t, []Entry{
		{ColumnID: 1, Kind: KindData, Page: pagestore.PageRef{Offset: 1024, Size: 512}},
		{ColumnID: 1, Kind: KindData, Page: pagestore.PageRef{Offset: 1536, Size: 512}},
		{ColumnID: 1, Kind: KindRepetition, Page: pagestore.PageRef{Offset: 512, Size: 512}},
		{ColumnID: 2, Kind: KindData, Page: pagestore.PageRef{Offset: 2048, Size: 512}},
	}, idx.Entries())

	offset, size := idx.Span(1)
	assert.Equal(t, uint64(512), offset)
	assert.Equal(t, uint64(1536), size)

	offset, size = idx.Span(3)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(0), size)
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DATA", KindData.String())
	assert.Equal(t, "RLEVEL", KindRepetition.String())
	assert.Equal(t, "DLEVEL", KindDefinition.String())
	assert.False(t, Kind(0).Valid())
	assert.True(t, KindDefinition.Valid())
}

func TestLevels_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		max    uint32
		levels []uint32
	}{
		{name: "binary", max: 1, levels: []uint32{0, 1, 1, 0, 1}},
		{name: "runs", max: 3, levels: []uint32{0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 3, 3, 3, 3, 3, 3, 3, 2, 1}},
		{name: "wide", max: 300, levels: []uint32{300, 0, 150, 299}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := EncodeLevels(tt.levels, tt.max)
			require.NoError(t, err)

			dec := NewLevelDecoder(tt.max)
			assert.Equal(t, tt.max, dec.MaxLevel())
			require.NoError(t, dec.Init(bytes.NewReader(data)))

			for _, expected := range tt.levels {
				l, err := dec.NextLevel()
				require.NoError(t, err)
				assert.Equal(t, expected, l)
			}
		})
	}
}

func TestLevelDecoder_ZeroMax(t *testing.T) {
	t.Parallel()

	dec := NewLevelDecoder(0)
	require.NoError(t, dec.Init(nil))

	for i := 0; i < 3; i++ {
		l, err := dec.NextLevel()
		require.NoError(t, err)
		assert.Equal(t, uint32(0), l)
	}
}

func TestEncodeLevels_OutOfRange(t *testing.T) {
	t.Parallel()

	_, err := EncodeLevels([]uint32{4}, 3)
	assert.Error(t, err)
}
