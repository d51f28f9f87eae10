package cstable

import (
	"bytes"
	"context"

	"github.com/hexbee-net/cstable/column"
	"github.com/hexbee-net/cstable/layout"
	"github.com/hexbee-net/cstable/pagestore"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/source"
	"github.com/hexbee-net/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// RecordSink receives shredded records: one column writer per leaf column and
// one AddRow call per record.
type RecordSink interface {
	Schema() *schema.Schema
	ColumnWriter(path string) (column.Writer, error)
	AddRow()
}

// TableWriter writes a table into a file. Pages are persisted as they fill up;
// the table only becomes readable once Commit rewrites the file header.
type TableWriter struct {
	schema *schema.Schema
	store  *pagestore.Store
	blocks *layout.BlockWriter
	logger *zap.Logger
	opts   *options

	headerPage pagestore.PageRef
	columns    []*column.PagedWriter
	byPath     map[string]*column.PagedWriter

	numRows   uint64
	committed bool
}

// NewTableWriter starts a table with schema s in file, which must be empty.
func NewTableWriter(file source.File, s *schema.Schema, opts ...Option) (*TableWriter, error) {
	o := newOptions(opts)

	store, err := pagestore.New(file,
		pagestore.WithLogger(o.logger),
		pagestore.WithSectorSize(o.sectorSize))
	if err != nil {
		return nil, err
	}

	blocks, err := layout.NewBlockWriter(store, o.codec)
	if err != nil {
		return nil, err
	}

	headerPage, err := store.Alloc(headerSize)
	if err != nil {
		return nil, err
	}

	w := &TableWriter{
		schema:     s,
		store:      store,
		blocks:     blocks,
		logger:     o.logger,
		opts:       o,
		headerPage: headerPage,
		byPath:     make(map[string]*column.PagedWriter),
	}

	for _, col := range s.Columns() {
		cw, err := column.NewPagedWriter(col, blocks, column.WithPageSize(o.pageSize))
		if err != nil {
			return nil, err
		}

		w.columns = append(w.columns, cw)
		w.byPath[col.Path] = cw
	}

	return w, nil
}

func (w *TableWriter) Schema() *schema.Schema {
	return w.schema
}

// ColumnWriter returns the writer of the leaf column at path.
func (w *TableWriter) ColumnWriter(path string) (column.Writer, error) {
	if w.committed {
		return nil, errors.WithStack(errCommitted)
	}

	cw, ok := w.byPath[path]
	if !ok {
		return nil, errors.WithFields(
			errors.WithStack(schema.ErrUnknownField),
			errors.Fields{
				"path": path,
			})
	}

	return cw, nil
}

// AddRow counts one more record written to every column.
func (w *TableWriter) AddRow() {
	w.numRows++
}

func (w *TableWriter) NumRows() uint64 {
	return w.numRows
}

// Commit seals every column, writes the footer and then the header. Nothing
// can be written to the table afterwards.
func (w *TableWriter) Commit(ctx context.Context) (err error) {
	_, span := tracer().Start(ctx, "cstable.Commit")
	defer func() { endSpan(span, err) }()

	if w.committed {
		return errors.WithStack(errCommitted)
	}

	idx := layout.NewIndex()

	for _, cw := range w.columns {
		if err := cw.Commit(idx); err != nil {
			return err
		}

		if cw.NumRecords() != w.numRows {
			return errors.WithFields(
				errors.WithStack(ErrConsistency),
				errors.Fields{
					"column":         cw.Column().Path,
					"column-records": cw.NumRecords(),
					"table-rows":     w.numRows,
				})
		}
	}

	meta, err := w.footer(idx)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := layout.WriteThrift(meta, buf); err != nil {
		return errors.Wrap(err, "failed to encode footer")
	}

	// the page size bounds the footer size stored in the header
	footerPage, err := w.store.Alloc(uint64(buf.Len()))
	if err != nil {
		return errors.Wrap(err, "failed to allocate footer")
	}

	if err := w.store.Write(footerPage, 0, buf.Bytes()); err != nil {
		return err
	}

	if err := w.store.FlushAll(); err != nil {
		return err
	}

	w.logger.Debug("footer written",
		zap.Uint64("offset", footerPage.Offset),
		zap.Int("size", buf.Len()))

	h := &header{
		version:      FormatVersion,
		flags:        flagCommitted,
		footerOffset: footerPage.Offset,
		footerSize:   uint32(buf.Len()),
	}

	if err := w.store.Write(w.headerPage, 0, h.marshal()); err != nil {
		return err
	}

	if err := w.store.Flush(w.headerPage); err != nil {
		return err
	}

	w.committed = true

	span.SetAttributes(
		attribute.Int64("cstable.rows", int64(w.numRows)),
		attribute.Int("cstable.columns", len(w.columns)),
		attribute.Int64("cstable.size", int64(w.store.Watermark())))

	w.logger.Info("table committed",
		zap.Uint64("rows", w.numRows),
		zap.Int("columns", len(w.columns)),
		zap.String("codec", w.blocks.Codec().String()),
		zap.Uint64("size", w.store.Watermark()))

	return nil
}

func (w *TableWriter) footer(idx *layout.Index) (*FileMetaData, error) {
	def, err := w.schema.Definition()
	if err != nil {
		return nil, err
	}

	meta := &FileMetaData{
		Version: FormatVersion,
		NumRows: int64(w.numRows),
		Codec:   int32(w.blocks.Codec()),
		Schema:  def,
	}

	for _, cw := range w.columns {
		col := cw.Column()
		offset, size := idx.Span(col.ID)

		meta.Columns = append(meta.Columns, &ColumnMeta{
			ID:         int32(col.ID),
			Path:       col.Path,
			Type:       int32(col.Type),
			Encoding:   int32(col.Encoding),
			RLevelMax:  int32(col.MaxRepetitionLevel),
			DLevelMax:  int32(col.MaxDefinitionLevel),
			NumTriples: int64(cw.NumTriples()),
			BodyOffset: int64(offset),
			BodySize:   int64(size),
		})
	}

	for _, e := range idx.Entries() {
		meta.Pages = append(meta.Pages, &PageEntry{
			ColumnID: int32(e.ColumnID),
			Kind:     int32(e.Kind),
			Offset:   int64(e.Page.Offset),
			Size:     int32(e.Page.Size),
		})
	}

	return meta, nil
}
