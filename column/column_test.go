package column

import (
	"math"
	"strings"
	"testing"

	"github.com/hexbee-net/cstable/compression"
	"github.com/hexbee-net/cstable/layout"
	"github.com/hexbee-net/cstable/pagestore"
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/source/memory"
	"github.com/hexbee-net/cstable/types"
	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func testColumn(t schema.Type, e schema.Encoding, rmax, dmax uint32) *schema.Column {
	return &schema.Column{
		ID:                 7,
		Path:               "a.b",
		Type:               t,
		Encoding:           e,
		MaxRepetitionLevel: rmax,
		MaxDefinitionLevel: dmax,
	}
}

type harness struct {
	store  *pagestore.Store
	blocks *layout.BlockWriter
	index  *layout.Index
}

func newHarness(t *testing.T, codec compression.Codec) *harness {
	t.Helper()

	store, err := pagestore.New(memory.NewFile(nil))
	require.NoError(t, err)

	blocks, err := layout.NewBlockWriter(store, codec)
	require.NoError(t, err)

	return &harness{store: store, blocks: blocks, index: layout.NewIndex()}
}

func (h *harness) reader(t *testing.T, col *schema.Column, numTriples uint64) *PagedReader {
	t.Helper()

	r, err := NewPagedReader(col, layout.NewBlockReader(h.store), h.index, numTriples)
	require.NoError(t, err)

	return r
}

func writeTriples(t *testing.T, w Writer, triples []Triple) {
	t.Helper()

	for _, tr := range triples {
		if tr.Defined {
			require.NoError(t, w.WriteValue(tr.R, tr.D, tr.Value))
		} else {
			require.NoError(t, w.WriteNull(tr.R, tr.D))
		}
	}
}

func readAll(t *testing.T, r Reader) []Triple {
	t.Helper()

	var res []Triple

	for !r.EOF() {
		tr, err := r.Read()
		require.NoError(t, err)

		res = append(res, tr)
	}

	return res
}

// repeated optional strings: rmax 1, dmax 2.
var nestedTriples = []Triple{
	{R: 0, D: 2, Defined: true, Value: record.String("en-us")},
	{R: 1, D: 2, Defined: true, Value: record.String("en")},
	{R: 1, D: 1},
	{R: 0, D: 0},
	{R: 0, D: 2, Defined: true, Value: record.String("en-gb")},
}

func TestPaged_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		col     *schema.Column
		triples []Triple
	}{
		{
			name:    "nested strings",
			col:     testColumn(schema.TypeString, schema.EncodingStringPlain, 1, 2),
			triples: nestedTriples,
		},
		{
			name: "required uint",
			col:  testColumn(schema.TypeUnsignedInt, schema.EncodingUInt64LEB128, 0, 0),
			triples: []Triple{
				{Defined: true, Value: record.UInt(10)},
				{Defined: true, Value: record.UInt(20)},
			},
		},
		{
			name: "optional bool",
			col:  testColumn(schema.TypeBoolean, schema.EncodingBooleanBitPacked, 0, 1),
			triples: []Triple{
				{D: 1, Defined: true, Value: record.Bool(true)},
				{D: 0},
				{D: 1, Defined: true, Value: record.Bool(false)},
			},
		},
		{
			name: "all nulls",
			col:  testColumn(schema.TypeFloat, schema.EncodingFloatIEEE754, 0, 1),
			triples: []Triple{
				{D: 0},
				{D: 0},
			},
		},
		{
			name: "repeated datetime",
			col:  testColumn(schema.TypeDateTime, schema.EncodingUInt32BitPacked, 2, 2),
			triples: []Triple{
				{R: 0, D: 2, Defined: true, Value: record.UInt(1)},
				{R: 2, D: 2, Defined: true, Value: record.UInt(2)},
				{R: 1, D: 2, Defined: true, Value: record.UInt(3)},
				{R: 0, D: 1},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, compression.CodecSnappy)

			w, err := NewPagedWriter(tt.col, h.blocks)
			require.NoError(t, err)

			writeTriples(t, w, tt.triples)
			require.NoError(t, w.Commit(h.index))

			assert.Equal(t, uint64(len(tt.triples)), w.NumTriples())

			r := h.reader(t, tt.col, w.NumTriples())
			assert.Equal(t, tt.triples, readAll(t, r))

			_, err = r.Read()
			assert.Equal(t, ErrTruncated, errors.Cause(err))
		})
	}
}

func TestPaged_LevelStreams(t *testing.T) {
	t.Parallel()

	h := newHarness(t, compression.CodecUncompressed)

	required := testColumn(schema.TypeUnsignedInt, schema.EncodingUInt64Plain, 0, 0)
	w, err := NewPagedWriter(required, h.blocks)
	require.NoError(t, err)

	require.NoError(t, w.WriteValue(0, 0, record.UInt(1)))
	require.NoError(t, w.Commit(h.index))

	assert.Nil(t, h.index.Pages(required.ID, layout.KindRepetition))
	assert.Nil(t, h.index.Pages(required.ID, layout.KindDefinition))
	assert.Len(t, h.index.Pages(required.ID, layout.KindData), 1)
}

func TestPaged_ManyPages(t *testing.T) {
	t.Parallel()

	h := newHarness(t, compression.CodecZStd)
	col := testColumn(schema.TypeString, schema.EncodingStringPlain, 1, 2)

	w, err := NewPagedWriter(col, h.blocks, WithPageSize(100))
	require.NoError(t, err)

	var triples []Triple
	for i := 0; i < 50; i++ {
		triples = append(triples, nestedTriples...)
	}

	writeTriples(t, w, triples)
	require.NoError(t, w.Commit(h.index))

	pages := h.index.Pages(col.ID, layout.KindData)
	assert.True(t, len(pages) > 1)
	assert.Len(t, h.index.Pages(col.ID, layout.KindRepetition), len(pages))
	assert.Len(t, h.index.Pages(col.ID, layout.KindDefinition), len(pages))
	assert.Equal(t, uint64(150), w.NumRecords())

	r := h.reader(t, col, w.NumTriples())
	assert.Equal(t, triples, readAll(t, r))
}

func TestPagedReader_Skip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typ      schema.Type
		encoding schema.Encoding
		value    func(i int) record.Value
	}{
		{"string", schema.TypeString, schema.EncodingStringPlain, func(i int) record.Value {
			return record.String(strings.Repeat("x", i%7))
		}},
		{"uint64 plain", schema.TypeUnsignedInt, schema.EncodingUInt64Plain, func(i int) record.Value {
			return record.UInt(uint64(i) << 33)
		}},
		{"uint32 bit-packed", schema.TypeUnsignedInt, schema.EncodingUInt32BitPacked, func(i int) record.Value {
			return record.UInt(uint64(i % 5))
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, compression.CodecSnappy)
			col := testColumn(tt.typ, tt.encoding, 0, 1)

			w, err := NewPagedWriter(col, h.blocks, WithPageSize(64))
			require.NoError(t, err)

			var triples []Triple
			for i := 0; i < 200; i++ {
				if i%3 == 0 {
					triples = append(triples, Triple{R: 0, D: 0})
				} else {
					triples = append(triples, Triple{R: 0, D: 1, Defined: true, Value: tt.value(i)})
				}
			}

			writeTriples(t, w, triples)
			require.NoError(t, w.Commit(h.index))
			require.True(t, len(h.index.Pages(col.ID, layout.KindData)) > 1)

			r := h.reader(t, col, w.NumTriples())

			for i, expected := range triples {
				if i%2 == 0 {
					require.NoError(t, r.Skip(), "triple %d", i)
					continue
				}

				tr, err := r.Read()
				require.NoError(t, err)
				assert.Equal(t, expected, tr, "triple %d", i)
			}

			assert.True(t, r.EOF())
			assert.Equal(t, ErrTruncated, errors.Cause(r.Skip()))
		})
	}
}

func TestPagedReader_Truncated(t *testing.T) {
	t.Parallel()

	h := newHarness(t, compression.CodecUncompressed)
	col := testColumn(schema.TypeString, schema.EncodingStringPlain, 1, 2)

	w, err := NewPagedWriter(col, h.blocks)
	require.NoError(t, err)

	writeTriples(t, w, nestedTriples)
	require.NoError(t, w.Commit(h.index))

	r := h.reader(t, col, w.NumTriples()+1)
	for range nestedTriples {
		_, err := r.Read()
		require.NoError(t, err)
	}

	assert.False(t, r.EOF())

	_, err = r.Read()
	assert.Equal(t, ErrTruncated, errors.Cause(err))
}

func TestPagedReader_LevelOutOfRange(t *testing.T) {
	t.Parallel()

	h := newHarness(t, compression.CodecUncompressed)
	col := testColumn(schema.TypeString, schema.EncodingStringPlain, 0, 2)

	levels, err := layout.EncodeLevels([]uint32{3}, 3)
	require.NoError(t, err)

	page, err := h.blocks.WriteBlock(levels, 1)
	require.NoError(t, err)
	h.index.Add(col.ID, layout.KindDefinition, page)

	page, err = h.blocks.WriteBlock(nil, 0)
	require.NoError(t, err)
	h.index.Add(col.ID, layout.KindData, page)

	r := h.reader(t, col, 1)

	_, err = r.Read()
	assert.Equal(t, ErrLevelOutOfRange, errors.Cause(err))
}

func TestPagedReader_MissingValue(t *testing.T) {
	t.Parallel()

	h := newHarness(t, compression.CodecUncompressed)
	col := testColumn(schema.TypeString, schema.EncodingStringPlain, 0, 1)

	levels, err := layout.EncodeLevels([]uint32{1}, 1)
	require.NoError(t, err)

	page, err := h.blocks.WriteBlock(levels, 1)
	require.NoError(t, err)
	h.index.Add(col.ID, layout.KindDefinition, page)

	page, err = h.blocks.WriteBlock(nil, 0)
	require.NoError(t, err)
	h.index.Add(col.ID, layout.KindData, page)

	_, err = h.reader(t, col, 1).Read()
	assert.Equal(t, ErrTruncated, errors.Cause(err))
}

func TestPaged_UnsupportedEncoding(t *testing.T) {
	t.Parallel()

	h := newHarness(t, compression.CodecUncompressed)
	col := testColumn(schema.TypeString, schema.EncodingUInt64Plain, 0, 0)

	_, err := NewPagedWriter(col, h.blocks)
	assert.Equal(t, ErrUnsupportedEncoding, errors.Cause(err))

	_, err = NewPagedReader(col, layout.NewBlockReader(h.store), h.index, 0)
	assert.Equal(t, ErrUnsupportedEncoding, errors.Cause(err))
}

func TestWriter_InvalidTriples(t *testing.T) {
	t.Parallel()

	col := testColumn(schema.TypeString, schema.EncodingStringPlain, 1, 2)
	h := newHarness(t, compression.CodecUncompressed)

	paged, err := NewPagedWriter(col, h.blocks)
	require.NoError(t, err)

	for _, w := range []Writer{NewBuffer(col), paged} {
		assert.Equal(t, ErrLevelOutOfRange, errors.Cause(w.WriteValue(2, 2, record.String("x"))))
		assert.Equal(t, ErrLevelOutOfRange, errors.Cause(w.WriteValue(0, 1, record.String("x"))))
		assert.Equal(t, ErrLevelOutOfRange, errors.Cause(w.WriteNull(0, 2)))
		assert.Equal(t, ErrLevelOutOfRange, errors.Cause(w.WriteNull(0, 3)))
		assert.Equal(t, errValueKind, errors.Cause(w.WriteValue(0, 2, record.UInt(1))))
	}
}

func TestWriter_ValueOutOfRange(t *testing.T) {
	t.Parallel()

	for _, e := range []schema.Encoding{schema.EncodingUInt32Plain, schema.EncodingUInt32BitPacked} {
		e := e
		t.Run(e.String(), func(t *testing.T) {
			t.Parallel()

			col := testColumn(schema.TypeUnsignedInt, e, 0, 0)
			h := newHarness(t, compression.CodecUncompressed)

			paged, err := NewPagedWriter(col, h.blocks)
			require.NoError(t, err)

			writers := []interface {
				Writer
				NumTriples() uint64
			}{NewBuffer(col), paged}

			for _, w := range writers {
				err := w.WriteValue(0, 0, record.UInt(math.MaxUint32+1))
				assert.Equal(t, types.ErrValueOutOfRange, errors.Cause(err))
				require.NoError(t, w.WriteValue(0, 0, record.UInt(math.MaxUint32)))
				assert.Equal(t, uint64(1), w.NumTriples())
			}

			require.NoError(t, paged.Commit(h.index))
			assert.Equal(t,
				[]Triple{{R: 0, D: 0, Defined: true, Value: record.UInt(math.MaxUint32)}},
				readAll(t, h.reader(t, col, 1)))
		})
	}
}

func TestReaders_PeekSkipCopy(t *testing.T) {
	t.Parallel()

	col := testColumn(schema.TypeString, schema.EncodingStringPlain, 1, 2)

	h := newHarness(t, compression.CodecGZip)
	paged, err := NewPagedWriter(col, h.blocks)
	require.NoError(t, err)
	writeTriples(t, paged, nestedTriples)
	require.NoError(t, paged.Commit(h.index))

	buf := NewBuffer(col)
	writeTriples(t, buf, nestedTriples)
	assert.Equal(t, uint64(3), buf.NumRecords())
	assert.Equal(t, uint64(5), buf.NumTriples())

	readers := map[string]Reader{
		"paged":  h.reader(t, col, paged.NumTriples()),
		"buffer": buf.Reader(),
	}

	for name, r := range readers {
		r := r
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, col, r.Column())

			l, err := r.NextRepetitionLevel()
			require.NoError(t, err)
			assert.Equal(t, uint32(0), l)

			// peeking twice does not consume
			l, err = r.NextRepetitionLevel()
			require.NoError(t, err)
			assert.Equal(t, uint32(0), l)

			require.NoError(t, r.Skip())

			l, err = r.NextRepetitionLevel()
			require.NoError(t, err)
			assert.Equal(t, uint32(1), l)

			dst := NewBuffer(col)
			for i := 0; i < 4; i++ {
				require.NoError(t, r.CopyTo(dst))
			}

			assert.True(t, r.EOF())
			assert.Equal(t, nestedTriples[1:], dst.Triples())

			_, err = r.NextRepetitionLevel()
			assert.Equal(t, ErrTruncated, errors.Cause(err))
		})
	}
}

func TestBuffer_Reset(t *testing.T) {
	t.Parallel()

	col := testColumn(schema.TypeString, schema.EncodingStringPlain, 1, 2)

	buf := NewBuffer(col)
	writeTriples(t, buf, nestedTriples)

	before := buf.Reader()
	buf.Reset()
	require.NoError(t, buf.WriteValue(0, 2, record.String("after")))

	// readers keep the triples they were created over
	assert.Equal(t, nestedTriples, readAll(t, before))
	assert.Equal(t, []Triple{{R: 0, D: 2, Defined: true, Value: record.String("after")}}, readAll(t, buf.Reader()))

	buf.Reset()

	assert.Equal(t, uint64(0), buf.NumTriples())
	assert.Equal(t, uint64(0), buf.NumRecords())
	assert.True(t, buf.Reader().EOF())
}
