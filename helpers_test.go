package cstable

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/source/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// documentSchema is the document example of the Dremel paper, extended with
// every scalar type.
func documentSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.New(
		schema.NewScalar(1, "DocId", schema.TypeUnsignedInt),
		schema.NewObject(2, "Links",
			schema.NewScalar(3, "Backward", schema.TypeUnsignedInt).AsRepeated(),
			schema.NewScalar(4, "Forward", schema.TypeUnsignedInt).AsRepeated().WithEncoding(schema.EncodingUInt32BitPacked),
		).AsOptional(),
		schema.NewObject(5, "Name",
			schema.NewObject(6, "Language",
				schema.NewScalar(7, "Code", schema.TypeString),
				schema.NewScalar(8, "Country", schema.TypeString).AsOptional(),
			).AsRepeated(),
			schema.NewScalar(9, "Url", schema.TypeString).AsOptional(),
		).AsRepeated(),
		schema.NewScalar(10, "Score", schema.TypeFloat).AsOptional(),
		schema.NewScalar(11, "Active", schema.TypeBoolean),
		schema.NewScalar(12, "Created", schema.TypeDateTime).AsOptional().WithEncoding(schema.EncodingUInt64Plain),
	)
	require.NoError(t, err)

	return s
}

// paperRecords returns the two sample records of the Dremel paper.
func paperRecords() []*record.Record {
	r1 := record.New()
	r1.AddValue(record.Root, 1, record.UInt(10))
	r1.AddValue(record.Root, 11, record.Bool(true))

	links := r1.AddObject(record.Root, 2)
	r1.AddValue(links, 4, record.UInt(20))
	r1.AddValue(links, 4, record.UInt(40))
	r1.AddValue(links, 4, record.UInt(60))

	name := r1.AddObject(record.Root, 5)
	lang := r1.AddObject(name, 6)
	r1.AddValue(lang, 7, record.String("en-us"))
	r1.AddValue(lang, 8, record.String("us"))
	lang = r1.AddObject(name, 6)
	r1.AddValue(lang, 7, record.String("en"))
	r1.AddValue(name, 9, record.String("http://A"))

	name = r1.AddObject(record.Root, 5)
	r1.AddValue(name, 9, record.String("http://B"))

	name = r1.AddObject(record.Root, 5)
	lang = r1.AddObject(name, 6)
	r1.AddValue(lang, 7, record.String("en-gb"))
	r1.AddValue(lang, 8, record.String("gb"))

	r2 := record.New()
	r2.AddValue(record.Root, 1, record.UInt(20))
	r2.AddValue(record.Root, 11, record.Bool(false))
	r2.AddValue(record.Root, 10, record.Float(0.5))
	r2.AddValue(record.Root, 12, record.UInt(1600000000000000))

	links = r2.AddObject(record.Root, 2)
	r2.AddValue(links, 3, record.UInt(10))
	r2.AddValue(links, 3, record.UInt(30))
	r2.AddValue(links, 4, record.UInt(80))

	name = r2.AddObject(record.Root, 5)
	r2.AddValue(name, 9, record.String("http://C"))

	return []*record.Record{r1, r2}
}

// randomRecord builds a record valid against fields.
func randomRecord(f *gofakeit.Faker, fields []*schema.Field) *record.Record {
	rec := record.New()
	fillRandom(f, rec, record.Root, fields)

	return rec
}

func fillRandom(f *gofakeit.Faker, rec *record.Record, node record.NodeID, fields []*schema.Field) {
	for _, field := range fields {
		n := 1

		switch {
		case field.Repeated:
			n = f.Number(0, 3)
		case field.Optional:
			n = f.Number(0, 1)
		}

		for i := 0; i < n; i++ {
			if field.IsObject() {
				fillRandom(f, rec, rec.AddObject(node, field.ID), field.Fields)
				continue
			}

			rec.AddValue(node, field.ID, randomValue(f, field))
		}
	}
}

func randomValue(f *gofakeit.Faker, field *schema.Field) record.Value {
	switch field.Type {
	case schema.TypeBoolean:
		return record.Bool(f.Bool())
	case schema.TypeFloat:
		return record.Float(f.Float64Range(-1e6, 1e6))
	case schema.TypeDateTime:
		return record.UInt(uint64(f.Date().UnixMicro()) & (1<<62 - 1))
	case schema.TypeString:
		return record.String(f.Word())
	default:
		if field.Encoding == schema.EncodingUInt32BitPacked || field.Encoding == schema.EncodingUInt32Plain {
			return record.UInt(uint64(f.Uint32()))
		}

		return record.UInt(f.Uint64())
	}
}

func randomRecords(seed int64, s *schema.Schema, n int) []*record.Record {
	f := gofakeit.New(seed)

	recs := make([]*record.Record, n)
	for i := range recs {
		recs[i] = randomRecord(f, s.Fields())
	}

	return recs
}

func writeTable(t *testing.T, s *schema.Schema, recs []*record.Record, opts ...Option) *memory.File {
	t.Helper()

	file := memory.NewFile(nil)

	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)

	w, err := NewTableWriter(file, s, opts...)
	require.NoError(t, err)

	shredder, err := NewRecordShredder(w)
	require.NoError(t, err)

	for _, rec := range recs {
		require.NoError(t, shredder.AddRecord(rec))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, w.Commit(ctx))

	return file
}

func openTable(t *testing.T, file *memory.File, opts ...Option) *TableReader {
	t.Helper()

	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)

	table, err := OpenTable(context.Background(), file, opts...)
	require.NoError(t, err)

	return table
}

func readAll(t *testing.T, m *RecordMaterializer) []*record.Record {
	t.Helper()

	var recs []*record.Record

	for {
		rec, err := m.NextRecord()
		if err == io.EOF {
			return recs
		}

		require.NoError(t, err)

		recs = append(recs, rec)
	}
}

func requireEqualRecords(t *testing.T, expected, actual []*record.Record) {
	t.Helper()

	require.Len(t, actual, len(expected))

	for i := range expected {
		require.True(t, record.Equal(expected[i], actual[i]),
			"record %d:\nexpected %s\nactual   %s", i, expected[i], actual[i])
	}
}
