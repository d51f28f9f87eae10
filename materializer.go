package cstable

import (
	"io"

	"github.com/hexbee-net/cstable/column"
	"github.com/hexbee-net/cstable/internal/metrics"
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/errors"
	"go.uber.org/zap"
)

type columnState struct {
	col    *schema.Column
	reader column.Reader

	pending    column.Triple
	hasPending bool

	// indexes[i] is the current occurrence of the repeated field at level i+1.
	indexes []int
}

func (st *columnState) fetch() (column.Triple, error) {
	if !st.hasPending {
		t, err := st.reader.Read()
		if err != nil {
			return column.Triple{}, err
		}

		st.pending = t
		st.hasPending = true
	}

	return st.pending, nil
}

func (st *columnState) exhausted() bool {
	return !st.hasPending && st.reader.EOF()
}

// RecordMaterializer rebuilds records by reading every projected column in
// lock-step, one record at a time.
type RecordMaterializer struct {
	schema  *schema.Schema
	columns []*columnState
	numRows uint64
	row     uint64
	logger  *zap.Logger
}

// NewRecordMaterializer opens a reader on every column of s selected by the
// projection option (all columns by default).
func NewRecordMaterializer(s *schema.Schema, table ColumnSource, opts ...Option) (*RecordMaterializer, error) {
	o := newOptions(opts)

	cols, err := s.Project(o.projection...)
	if err != nil {
		return nil, err
	}

	m := &RecordMaterializer{
		schema:  s,
		numRows: table.NumRows(),
		logger:  o.logger,
	}

	for _, col := range cols {
		r, err := table.ColumnReader(col.Path)
		if err != nil {
			return nil, err
		}

		if stored := r.Column(); stored.ID != col.ID ||
			stored.MaxRepetitionLevel != col.MaxRepetitionLevel ||
			stored.MaxDefinitionLevel != col.MaxDefinitionLevel {
			return nil, errors.WithFields(
				errors.WithStack(ErrConsistency),
				errors.Fields{
					"column": col.Path,
					"reason": "stored column does not match schema",
				})
		}

		m.columns = append(m.columns, &columnState{
			col:     col,
			reader:  r,
			indexes: make([]int, col.MaxRepetitionLevel),
		})
	}

	m.logger.Debug("materializer ready",
		zap.Int("columns", len(m.columns)),
		zap.Uint64("rows", m.numRows))

	return m, nil
}

// NumRows returns the number of records of the table.
func (m *RecordMaterializer) NumRows() uint64 {
	return m.numRows
}

// NextRecord returns the next record, or io.EOF after the last one.
func (m *RecordMaterializer) NextRecord() (*record.Record, error) {
	if err := m.checkRecordStart(); err != nil {
		return nil, err
	}

	rec := record.New()

	for _, st := range m.columns {
		if err := m.fetchColumn(rec, st); err != nil {
			return nil, err
		}
	}

	m.row++
	metrics.RecordsMaterialized.Inc()

	return rec, nil
}

// SkipRecord discards the next record in every column.
func (m *RecordMaterializer) SkipRecord() error {
	if err := m.checkRecordStart(); err != nil {
		return err
	}

	for _, st := range m.columns {
		t, err := st.fetch()
		if err != nil {
			return err
		}

		if t.R != 0 {
			return m.misaligned(st, t)
		}

		st.hasPending = false

		for !st.reader.EOF() {
			r, err := st.reader.NextRepetitionLevel()
			if err != nil {
				return err
			}

			if r == 0 {
				break
			}

			if err := st.reader.Skip(); err != nil {
				return err
			}
		}
	}

	m.row++

	return nil
}

func (m *RecordMaterializer) checkRecordStart() error {
	if m.row >= m.numRows {
		for _, st := range m.columns {
			if !st.exhausted() {
				return errors.WithFields(
					errors.WithStack(ErrConsistency),
					errors.Fields{
						"column": st.col.Path,
						"reason": "data after the last record",
						"rows":   m.numRows,
					})
			}
		}

		return io.EOF
	}

	var done []string

	for _, st := range m.columns {
		if st.exhausted() {
			done = append(done, st.col.Path)
		}
	}

	switch {
	case len(done) == 0:
		return nil
	case len(done) == len(m.columns):
		return errors.WithFields(
			errors.WithStack(column.ErrTruncated),
			errors.Fields{
				"row":  m.row,
				"rows": m.numRows,
			})
	default:
		return errors.WithFields(
			errors.WithStack(ErrConsistency),
			errors.Fields{
				"row":       m.row,
				"exhausted": done,
			})
	}
}

func (m *RecordMaterializer) misaligned(st *columnState, t column.Triple) error {
	return errors.WithFields(
		errors.WithStack(ErrConsistency),
		errors.Fields{
			"column": st.col.Path,
			"row":    m.row,
			"r":      t.R,
			"reason": "record does not start at repetition level 0",
		})
}

// fetchColumn inserts the triples of the current record of one column.
func (m *RecordMaterializer) fetchColumn(rec *record.Record, st *columnState) error {
	for i := range st.indexes {
		st.indexes[i] = 0
	}

	t, err := st.fetch()
	if err != nil {
		return err
	}

	if t.R != 0 {
		return m.misaligned(st, t)
	}

	for {
		if t.R > 0 {
			st.indexes[t.R-1]++

			for i := int(t.R); i < len(st.indexes); i++ {
				st.indexes[i] = 0
			}
		}

		insert(rec, st, t)
		st.hasPending = false

		if st.reader.EOF() {
			return nil
		}

		if t, err = st.fetch(); err != nil {
			return err
		}

		if t.R == 0 {
			return nil
		}
	}
}

// insert adds the triple to rec. Ancestors are located or created down to
// the definition level of the triple; only defined triples add a leaf.
func insert(rec *record.Record, st *columnState, t column.Triple) {
	parent := record.Root

	for _, a := range st.col.Ancestors {
		if !t.Defined && a.DefinitionLevel > t.D {
			return
		}

		index := 0
		if a.Repeated {
			index = st.indexes[a.RepetitionLevel-1]
		}

		parent = rec.EnsureChild(parent, a.FieldID, index)
	}

	if t.Defined {
		rec.AddValue(parent, st.col.ID, t.Value)
	}
}
