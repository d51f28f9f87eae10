package cstable

import (
	"context"
	"math"
	"testing"

	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/source/memory"
	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestRecordShredder_Errors(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)

	valid := func() *record.Record {
		rec := record.New()
		rec.AddValue(record.Root, 1, record.UInt(1))
		rec.AddValue(record.Root, 11, record.Bool(true))

		return rec
	}

	tests := []struct {
		name     string
		build    func() *record.Record
		expected error
	}{
		{
			name: "missing required field",
			build: func() *record.Record {
				rec := record.New()
				rec.AddValue(record.Root, 1, record.UInt(1))

				return rec
			},
			expected: ErrMissingField,
		},
		{
			name: "missing nested required field",
			build: func() *record.Record {
				rec := valid()
				name := rec.AddObject(record.Root, 5)
				rec.AddValue(rec.AddObject(name, 6), 8, record.String("fr"))

				return rec
			},
			expected: ErrMissingField,
		},
		{
			name: "repeated scalar",
			build: func() *record.Record {
				rec := valid()
				rec.AddValue(record.Root, 10, record.Float(1))
				rec.AddValue(record.Root, 10, record.Float(2))

				return rec
			},
			expected: ErrUnexpectedRepetition,
		},
		{
			name: "repeated object",
			build: func() *record.Record {
				rec := valid()
				rec.AddObject(record.Root, 2)
				rec.AddObject(record.Root, 2)

				return rec
			},
			expected: ErrUnexpectedRepetition,
		},
		{
			name: "unknown field",
			build: func() *record.Record {
				rec := valid()
				rec.AddValue(record.Root, 99, record.UInt(1))

				return rec
			},
			expected: schema.ErrUnknownField,
		},
		{
			name: "field of another object",
			build: func() *record.Record {
				rec := valid()
				rec.AddValue(rec.AddObject(record.Root, 2), 9, record.String("http://A"))

				return rec
			},
			expected: schema.ErrUnknownField,
		},
		{
			name: "scalar type mismatch",
			build: func() *record.Record {
				rec := record.New()
				rec.AddValue(record.Root, 1, record.String("1"))
				rec.AddValue(record.Root, 11, record.Bool(true))

				return rec
			},
			expected: ErrTypeMismatch,
		},
		{
			name: "object in place of scalar",
			build: func() *record.Record {
				rec := valid()
				rec.AddObject(record.Root, 10)

				return rec
			},
			expected: ErrTypeMismatch,
		},
		{
			name: "scalar in place of object",
			build: func() *record.Record {
				rec := valid()
				rec.AddValue(record.Root, 2, record.UInt(1))

				return rec
			},
			expected: ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := NewMemTable(s)

			shredder, err := NewRecordShredder(table)
			require.NoError(t, err)

			err = shredder.AddRecord(tt.build())
			assert.Equal(t, tt.expected, errors.Cause(err))
			assert.Equal(t, uint64(0), table.NumRows())

			for _, col := range s.Columns() {
				assert.Equal(t, uint64(0), table.buffers[col.Path].NumTriples(), col.Path)
			}
		})
	}
}

func TestRecordShredder_AtomicRecords(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)
	recs := paperRecords()

	table := NewMemTable(s)

	shredder, err := NewRecordShredder(table)
	require.NoError(t, err)

	require.NoError(t, shredder.AddRecord(recs[0]))

	invalid := record.New()
	invalid.AddValue(record.Root, 1, record.UInt(1))
	name := invalid.AddObject(record.Root, 5)
	invalid.AddValue(name, 9, record.String("http://X"))
	invalid.AddValue(name, 9, record.String("http://Y"))
	invalid.AddValue(record.Root, 11, record.Bool(true))

	assert.Equal(t, ErrUnexpectedRepetition, errors.Cause(shredder.AddRecord(invalid)))
	require.NoError(t, shredder.AddRecord(recs[1]))

	m, err := NewRecordMaterializer(s, table)
	require.NoError(t, err)

	requireEqualRecords(t, recs, readAll(t, m))
}

func TestNewRecordShredder_CommittedSink(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)

	w, err := NewTableWriter(memory.NewFile(nil), s)
	require.NoError(t, err)
	w.committed = true

	_, err = NewRecordShredder(w)
	assert.Equal(t, errCommitted, errors.Cause(err))
}

func TestRecordShredder_EncodingRange(t *testing.T) {
	t.Parallel()

	s, err := schema.New(
		schema.NewScalar(1, "a", schema.TypeUnsignedInt).WithEncoding(schema.EncodingUInt32Plain),
		schema.NewScalar(2, "b", schema.TypeUnsignedInt).WithEncoding(schema.EncodingUInt32BitPacked),
	)
	require.NoError(t, err)

	build := func(a, b uint64) *record.Record {
		rec := record.New()
		rec.AddValue(record.Root, 1, record.UInt(a))
		rec.AddValue(record.Root, 2, record.UInt(b))

		return rec
	}

	file := memory.NewFile(nil)

	w, err := NewTableWriter(file, s)
	require.NoError(t, err)

	shredder, err := NewRecordShredder(w)
	require.NoError(t, err)

	assert.Equal(t, ErrTypeMismatch, errors.Cause(shredder.AddRecord(build(1<<40, 1))))
	assert.Equal(t, ErrTypeMismatch, errors.Cause(shredder.AddRecord(build(1, math.MaxUint32+1))))
	assert.Equal(t, uint64(0), w.NumRows())

	require.NoError(t, shredder.AddRecord(build(math.MaxUint32, 7)))
	require.NoError(t, w.Commit(context.Background()))

	table, err := OpenTable(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), table.NumRows())
}
