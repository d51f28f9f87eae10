package cstable

import (
	"bytes"
	"context"

	"github.com/hexbee-net/cstable/column"
	"github.com/hexbee-net/cstable/compression"
	"github.com/hexbee-net/cstable/layout"
	"github.com/hexbee-net/cstable/pagestore"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/source"
	"github.com/hexbee-net/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ColumnSource gives access to the columns of a table. Each call to
// ColumnReader returns an independent cursor positioned on the first triple.
type ColumnSource interface {
	NumRows() uint64
	ColumnReader(path string) (column.Reader, error)
}

// TableReader reads a committed table. It is safe to open several column
// readers concurrently.
type TableReader struct {
	src    source.Reader
	store  *pagestore.Store
	meta   *FileMetaData
	schema *schema.Schema
	index  *layout.Index
	byPath map[string]*ColumnMeta
	logger *zap.Logger
}

// OpenTable reads the header and the footer of the table stored in src.
func OpenTable(ctx context.Context, src source.Reader, opts ...Option) (t *TableReader, err error) {
	_, span := tracer().Start(ctx, "cstable.OpenTable")
	defer func() { endSpan(span, err) }()

	o := newOptions(opts)

	store, err := pagestore.New(src, pagestore.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	if src.Size() < headerSize {
		return nil, errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason": "file too small",
				"size":   src.Size(),
			})
	}

	data, err := store.Read(pagestore.PageRef{Offset: 0, Size: headerSize})
	if err != nil {
		return nil, err
	}

	h := &header{}
	if err := h.unmarshal(data); err != nil {
		return nil, err
	}

	if h.footerOffset+uint64(h.footerSize) > uint64(src.Size()) {
		return nil, errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason":        "footer out of file",
				"footer-offset": h.footerOffset,
				"footer-size":   h.footerSize,
			})
	}

	meta, err := readFooter(store, h)
	if err != nil {
		return nil, err
	}

	t = &TableReader{
		src:    src,
		store:  store,
		meta:   meta,
		index:  layout.NewIndex(),
		byPath: make(map[string]*ColumnMeta),
		logger: o.logger,
	}

	if err := t.load(); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("cstable.rows", meta.NumRows),
		attribute.Int("cstable.columns", len(meta.Columns)))

	t.logger.Info("table opened",
		zap.Int64("rows", meta.NumRows),
		zap.Int("columns", len(meta.Columns)),
		zap.Int64("size", src.Size()))

	return t, nil
}

func readFooter(store *pagestore.Store, h *header) (*FileMetaData, error) {
	data, err := store.Read(pagestore.PageRef{Offset: h.footerOffset, Size: h.footerSize})
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason": "footer out of file",
				"cause":  err.Error(),
			})
	}

	meta := &FileMetaData{}
	if err := layout.ReadThrift(meta, bytes.NewReader(data)); err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason": "invalid footer",
				"cause":  err.Error(),
			})
	}

	if meta.Version != FormatVersion || meta.NumRows < 0 {
		return nil, errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason":  "invalid footer",
				"version": meta.Version,
				"rows":    meta.NumRows,
			})
	}

	return meta, nil
}

func (t *TableReader) load() error {
	s, err := schema.ParseDefinition(t.meta.Schema)
	if err != nil {
		return errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason": "invalid schema",
				"cause":  err.Error(),
			})
	}

	t.schema = s

	for _, c := range t.meta.Columns {
		t.byPath[c.Path] = c
	}

	for _, col := range s.Columns() {
		c, ok := t.byPath[col.Path]
		if !ok || c.ID != int32(col.ID) || c.Type != int32(col.Type) || c.Encoding != int32(col.Encoding) ||
			c.RLevelMax != int32(col.MaxRepetitionLevel) || c.DLevelMax != int32(col.MaxDefinitionLevel) ||
			c.NumTriples < 0 {
			return errors.WithFields(
				errors.WithStack(ErrFormat),
				errors.Fields{
					"reason": "column does not match schema",
					"column": col.Path,
				})
		}
	}

	for _, p := range t.meta.Pages {
		kind := layout.Kind(p.Kind)
		if !kind.Valid() || p.Offset < 0 || p.Size <= 0 {
			return errors.WithFields(
				errors.WithStack(ErrFormat),
				errors.Fields{
					"reason": "invalid page entry",
					"column": p.ColumnID,
					"kind":   p.Kind,
					"offset": p.Offset,
				})
		}

		t.index.Add(uint32(p.ColumnID), kind, pagestore.PageRef{Offset: uint64(p.Offset), Size: uint32(p.Size)})
	}

	return nil
}

// Schema returns the schema stored in the table footer.
func (t *TableReader) Schema() *schema.Schema {
	return t.schema
}

func (t *TableReader) NumRows() uint64 {
	return uint64(t.meta.NumRows)
}

// Codec returns the compression used by the writer of the table.
func (t *TableReader) Codec() compression.Codec {
	return compression.Codec(t.meta.Codec)
}

// Columns returns the footer description of every column.
func (t *TableReader) Columns() []*ColumnMeta {
	return t.meta.Columns
}

// Pages returns the column index of the table.
func (t *TableReader) Pages() []layout.Entry {
	return t.index.Entries()
}

// ColumnReader returns a new cursor over the column at path.
func (t *TableReader) ColumnReader(path string) (column.Reader, error) {
	col, ok := t.schema.Column(path)
	if !ok {
		return nil, errors.WithFields(
			errors.WithStack(schema.ErrUnknownField),
			errors.Fields{
				"path": path,
			})
	}

	return column.NewPagedReader(col, layout.NewBlockReader(t.store), t.index, uint64(t.byPath[path].NumTriples))
}

// Close closes the underlying source.
func (t *TableReader) Close() error {
	return t.src.Close()
}
