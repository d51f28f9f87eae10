package column

import (
	"bytes"

	"github.com/hexbee-net/cstable/layout"
	"github.com/hexbee-net/cstable/pagestore"
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/types"
	"github.com/hexbee-net/errors"
)

const (
	// DefaultPageSize is the approximate payload size at which a page is sealed.
	DefaultPageSize = 64 * 1024

	maxPageTriples = 1 << 20
)

type WriterOption func(*PagedWriter)

// WithPageSize sets the approximate size of the value payload of a page.
func WithPageSize(size int) WriterOption {
	return func(w *PagedWriter) {
		if size > 0 {
			w.pageSize = size
		}
	}
}

// PagedWriter buffers triples and seals them into pages: one page per stored
// level stream and one value page for every chunk of triples.
type PagedWriter struct {
	col      *schema.Column
	blocks   *layout.BlockWriter
	encoder  types.ValuesEncoder
	pageSize int

	rLevels   []uint32
	dLevels   []uint32
	values    []record.Value
	valueSize int

	numTriples uint64
	numRecords uint64
	pages      map[layout.Kind][]pagestore.PageRef
}

func NewPagedWriter(col *schema.Column, blocks *layout.BlockWriter, opts ...WriterOption) (*PagedWriter, error) {
	enc, err := types.NewEncoder(col.Encoding, col.Type)
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrUnsupportedEncoding),
			errors.Fields{
				"column":   col.Path,
				"type":     col.Type.String(),
				"encoding": col.Encoding.String(),
			})
	}

	w := &PagedWriter{
		col:      col,
		blocks:   blocks,
		encoder:  enc,
		pageSize: DefaultPageSize,
		pages:    make(map[layout.Kind][]pagestore.PageRef),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

func (w *PagedWriter) Column() *schema.Column {
	return w.col
}

func (w *PagedWriter) WriteValue(r, d uint32, v record.Value) error {
	if err := checkValue(w.col, r, d, v); err != nil {
		return err
	}

	w.values = append(w.values, v)

	switch v.Kind() {
	case record.KindString:
		w.valueSize += 4 + len(v.Str())
	case record.KindBool:
		w.valueSize++
	default:
		w.valueSize += 8
	}

	return w.append(r, d)
}

func (w *PagedWriter) WriteNull(r, d uint32) error {
	if err := checkNull(w.col, r, d); err != nil {
		return err
	}

	return w.append(r, d)
}

func (w *PagedWriter) append(r, d uint32) error {
	w.rLevels = append(w.rLevels, r)
	w.dLevels = append(w.dLevels, d)
	w.numTriples++

	if r == 0 {
		w.numRecords++
	}

	if w.valueSize >= w.pageSize || len(w.rLevels) >= maxPageTriples {
		return w.Flush()
	}

	return nil
}

// Flush seals the buffered triples into pages.
func (w *PagedWriter) Flush() error {
	if len(w.rLevels) == 0 {
		return nil
	}

	if w.col.HasRepetitionLevels() {
		if err := w.writeLevels(layout.KindRepetition, w.rLevels, w.col.MaxRepetitionLevel); err != nil {
			return err
		}
	}

	if w.col.HasDefinitionLevels() {
		if err := w.writeLevels(layout.KindDefinition, w.dLevels, w.col.MaxDefinitionLevel); err != nil {
			return err
		}
	}

	buf := &bytes.Buffer{}
	if err := w.encoder.Init(buf); err != nil {
		return err
	}

	if err := w.encoder.EncodeValues(w.values); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to encode values"),
			errors.Fields{
				"column": w.col.Path,
			})
	}

	if err := w.encoder.Close(); err != nil {
		return err
	}

	page, err := w.blocks.WriteBlock(buf.Bytes(), len(w.values))
	if err != nil {
		return err
	}

	w.pages[layout.KindData] = append(w.pages[layout.KindData], page)

	w.rLevels = w.rLevels[:0]
	w.dLevels = w.dLevels[:0]
	w.values = w.values[:0]
	w.valueSize = 0

	return nil
}

func (w *PagedWriter) writeLevels(kind layout.Kind, levels []uint32, max uint32) error {
	data, err := layout.EncodeLevels(levels, max)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to encode levels"),
			errors.Fields{
				"column": w.col.Path,
				"kind":   kind.String(),
			})
	}

	page, err := w.blocks.WriteBlock(data, len(levels))
	if err != nil {
		return err
	}

	w.pages[kind] = append(w.pages[kind], page)

	return nil
}

// Commit seals pending triples and registers every page of the column in idx.
func (w *PagedWriter) Commit(idx *layout.Index) error {
	if err := w.Flush(); err != nil {
		return err
	}

	for _, kind := range []layout.Kind{layout.KindRepetition, layout.KindDefinition, layout.KindData} {
		for _, p := range w.pages[kind] {
			idx.Add(w.col.ID, kind, p)
		}
	}

	return nil
}

func (w *PagedWriter) NumTriples() uint64 {
	return w.numTriples
}

// NumRecords returns the number of triples starting a record.
func (w *PagedWriter) NumRecords() uint64 {
	return w.numRecords
}
