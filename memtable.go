package cstable

import (
	"github.com/hexbee-net/cstable/column"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/errors"
)

// MemTable keeps every column of a table in memory. It is both a RecordSink
// and a ColumnSource, and is used to stage rows before writing them out.
type MemTable struct {
	schema  *schema.Schema
	buffers map[string]*column.Buffer
	numRows uint64
}

func NewMemTable(s *schema.Schema) *MemTable {
	t := &MemTable{
		schema:  s,
		buffers: make(map[string]*column.Buffer),
	}

	for _, col := range s.Columns() {
		t.buffers[col.Path] = column.NewBuffer(col)
	}

	return t
}

func (t *MemTable) Schema() *schema.Schema {
	return t.schema
}

func (t *MemTable) buffer(path string) (*column.Buffer, error) {
	b, ok := t.buffers[path]
	if !ok {
		return nil, errors.WithFields(
			errors.WithStack(schema.ErrUnknownField),
			errors.Fields{
				"path": path,
			})
	}

	return b, nil
}

func (t *MemTable) ColumnWriter(path string) (column.Writer, error) {
	b, err := t.buffer(path)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (t *MemTable) ColumnReader(path string) (column.Reader, error) {
	b, err := t.buffer(path)
	if err != nil {
		return nil, err
	}

	return b.Reader(), nil
}

func (t *MemTable) AddRow() {
	t.numRows++
}

func (t *MemTable) NumRows() uint64 {
	return t.numRows
}

// Reset drops every row.
func (t *MemTable) Reset() {
	for _, b := range t.buffers {
		b.Reset()
	}

	t.numRows = 0
}
