package column

import (
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
)

// Buffer keeps the triples of a column in memory.
type Buffer struct {
	col     *schema.Column
	triples []Triple
	records uint64
}

func NewBuffer(col *schema.Column) *Buffer {
	return &Buffer{col: col}
}

func (b *Buffer) WriteValue(r, d uint32, v record.Value) error {
	if err := checkValue(b.col, r, d, v); err != nil {
		return err
	}

	b.append(Triple{R: r, D: d, Defined: true, Value: v})

	return nil
}

func (b *Buffer) WriteNull(r, d uint32) error {
	if err := checkNull(b.col, r, d); err != nil {
		return err
	}

	b.append(Triple{R: r, D: d})

	return nil
}

func (b *Buffer) append(t Triple) {
	if t.R == 0 {
		b.records++
	}

	b.triples = append(b.triples, t)
}

func (b *Buffer) Column() *schema.Column {
	return b.col
}

// Triples returns the buffered triples. Appending to the result never
// alters the buffer.
func (b *Buffer) Triples() []Triple {
	return b.triples[:len(b.triples):len(b.triples)]
}

func (b *Buffer) NumTriples() uint64 {
	return uint64(len(b.triples))
}

// NumRecords returns the number of records started in the buffer.
func (b *Buffer) NumRecords() uint64 {
	return b.records
}

// Reset drops every triple. Readers created before the reset keep the
// triples they were created over.
func (b *Buffer) Reset() {
	b.triples = nil
	b.records = 0
}

// Reader returns a new cursor over the triples buffered so far. Triples
// written afterwards are not visible to it.
func (b *Buffer) Reader() Reader {
	return &bufferReader{
		col:     b.col,
		triples: b.triples[:len(b.triples):len(b.triples)],
	}
}

type bufferReader struct {
	col     *schema.Column
	triples []Triple
	pos     int
}

func (r *bufferReader) Read() (Triple, error) {
	if r.pos >= len(r.triples) {
		return Triple{}, truncated(r.col)
	}

	t := r.triples[r.pos]
	r.pos++

	return t, nil
}

func (r *bufferReader) Skip() error {
	_, err := r.Read()
	return err
}

func (r *bufferReader) CopyTo(w Writer) error {
	t, err := r.Read()
	if err != nil {
		return err
	}

	return copyTriple(t, w)
}

func (r *bufferReader) EOF() bool {
	return r.pos >= len(r.triples)
}

func (r *bufferReader) NextRepetitionLevel() (uint32, error) {
	if r.pos >= len(r.triples) {
		return 0, truncated(r.col)
	}

	return r.triples[r.pos].R, nil
}

func (r *bufferReader) Column() *schema.Column {
	return r.col
}
