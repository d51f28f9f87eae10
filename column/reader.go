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

// PagedReader decodes the triples of a column stored by a PagedWriter. Every
// reader owns its decoders, so several readers may scan the same column.
type PagedReader struct {
	col       *schema.Column
	blocks    *layout.BlockReader
	rPages    []pagestore.PageRef
	dPages    []pagestore.PageRef
	dataPages []pagestore.PageRef

	remaining uint64
	chunk     int
	chunkLeft int
	valueLeft int

	rLevels *layout.LevelDecoder
	dLevels *layout.LevelDecoder
	values  types.ValuesDecoder
	buf     []record.Value

	next    Triple
	hasNext bool
}

// NewPagedReader returns a reader over the pages of col registered in idx.
// numTriples is the number of triples the column holds.
func NewPagedReader(col *schema.Column, blocks *layout.BlockReader, idx *layout.Index, numTriples uint64) (*PagedReader, error) {
	dec, err := types.NewDecoder(col.Encoding, col.Type)
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrUnsupportedEncoding),
			errors.Fields{
				"column":   col.Path,
				"type":     col.Type.String(),
				"encoding": col.Encoding.String(),
			})
	}

	return &PagedReader{
		col:       col,
		blocks:    blocks,
		rPages:    idx.Pages(col.ID, layout.KindRepetition),
		dPages:    idx.Pages(col.ID, layout.KindDefinition),
		dataPages: idx.Pages(col.ID, layout.KindData),
		remaining: numTriples,
		rLevels:   layout.NewLevelDecoder(col.MaxRepetitionLevel),
		dLevels:   layout.NewLevelDecoder(col.MaxDefinitionLevel),
		values:    dec,
		buf:       make([]record.Value, 1),
	}, nil
}

func (r *PagedReader) Column() *schema.Column {
	return r.col
}

func (r *PagedReader) EOF() bool {
	return !r.hasNext && r.remaining == 0
}

func (r *PagedReader) Read() (Triple, error) {
	if r.hasNext {
		r.hasNext = false
		return r.next, nil
	}

	return r.decode()
}

// Skip drops the next triple. Values are stepped over without being decoded
// when the column encoding supports it.
func (r *PagedReader) Skip() error {
	if r.hasNext {
		r.hasNext = false
		return nil
	}

	_, dl, err := r.nextLevels()
	if err != nil {
		return err
	}

	if dl == r.col.MaxDefinitionLevel {
		if err := r.stepValue(true); err != nil {
			return err
		}
	}

	r.consume()

	return nil
}

func (r *PagedReader) CopyTo(w Writer) error {
	t, err := r.Read()
	if err != nil {
		return err
	}

	return copyTriple(t, w)
}

func (r *PagedReader) NextRepetitionLevel() (uint32, error) {
	if !r.hasNext {
		t, err := r.decode()
		if err != nil {
			return 0, err
		}

		r.next = t
		r.hasNext = true
	}

	return r.next.R, nil
}

func (r *PagedReader) decode() (Triple, error) {
	rl, dl, err := r.nextLevels()
	if err != nil {
		return Triple{}, err
	}

	t := Triple{R: rl, D: dl}

	if dl == r.col.MaxDefinitionLevel {
		if err := r.stepValue(false); err != nil {
			return Triple{}, err
		}

		t.Defined = true
		t.Value = r.buf[0]
	}

	r.consume()

	return t, nil
}

// nextLevels reads the levels of the next triple, loading a new chunk when
// the current one is exhausted.
func (r *PagedReader) nextLevels() (rl, dl uint32, err error) {
	if r.remaining == 0 {
		return 0, 0, truncated(r.col)
	}

	if r.chunkLeft == 0 {
		if err := r.loadChunk(); err != nil {
			return 0, 0, err
		}
	}

	if rl, err = r.rLevels.NextLevel(); err != nil {
		return 0, 0, r.streamError(err, layout.KindRepetition)
	}

	if dl, err = r.dLevels.NextLevel(); err != nil {
		return 0, 0, r.streamError(err, layout.KindDefinition)
	}

	if err := checkLevels(r.col, rl, dl); err != nil {
		return 0, 0, err
	}

	return rl, dl, nil
}

// stepValue moves the value decoder past one value, leaving it in r.buf
// unless skip is set and the decoder can step over it.
func (r *PagedReader) stepValue(skip bool) error {
	if r.valueLeft == 0 {
		return r.streamError(nil, layout.KindData)
	}

	var (
		n   int
		err error
	)

	if s, ok := r.values.(types.ValuesSkipper); ok && skip {
		n, err = s.SkipValues(1)
	} else {
		n, err = r.values.DecodeValues(r.buf)
	}

	if n != 1 {
		return r.streamError(err, layout.KindData)
	}

	r.valueLeft--

	return nil
}

func (r *PagedReader) consume() {
	r.chunkLeft--
	r.remaining--
}

// loadChunk reads the pages of the next chunk of triples.
func (r *PagedReader) loadChunk() error {
	if r.chunk >= len(r.dataPages) {
		return truncated(r.col)
	}

	count := -1

	if r.col.HasRepetitionLevels() {
		n, err := r.loadLevels(r.rLevels, r.rPages, layout.KindRepetition)
		if err != nil {
			return err
		}

		count = n
	}

	if r.col.HasDefinitionLevels() {
		n, err := r.loadLevels(r.dLevels, r.dPages, layout.KindDefinition)
		if err != nil {
			return err
		}

		if count >= 0 && n != count {
			return errors.WithFields(
				errors.WithStack(ErrTruncated),
				errors.Fields{
					"column":     r.col.Path,
					"r-triples":  count,
					"d-triples":  n,
					"page-index": r.chunk,
				})
		}

		count = n
	}

	header, data, err := r.blocks.ReadBlock(r.dataPages[r.chunk])
	if err != nil {
		return err
	}

	if count < 0 {
		count = int(header.NumValues)
	}

	if err := r.values.Init(bytes.NewReader(data)); err != nil {
		return err
	}

	r.valueLeft = int(header.NumValues)
	r.chunkLeft = count
	r.chunk++

	if count == 0 {
		return truncated(r.col)
	}

	return nil
}

func (r *PagedReader) loadLevels(dec *layout.LevelDecoder, pages []pagestore.PageRef, kind layout.Kind) (int, error) {
	if r.chunk >= len(pages) {
		return 0, r.streamError(nil, kind)
	}

	header, data, err := r.blocks.ReadBlock(pages[r.chunk])
	if err != nil {
		return 0, err
	}

	if err := dec.Init(bytes.NewReader(data)); err != nil {
		return 0, err
	}

	return int(header.NumValues), nil
}

func (r *PagedReader) streamError(cause error, kind layout.Kind) error {
	fields := errors.Fields{
		"column": r.col.Path,
		"kind":   kind.String(),
	}

	if cause != nil {
		fields["cause"] = cause.Error()
	}

	return errors.WithFields(errors.WithStack(ErrTruncated), fields)
}
