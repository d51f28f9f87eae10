package cstable

import (
	"github.com/hexbee-net/cstable/column"
	"github.com/hexbee-net/errors"
)

// CopyRows copies the rows of src for which keep returns true into dst, column
// by column, without rebuilding records. A nil keep copies every row. Both
// sides must share the leaf columns of dst's schema.
func CopyRows(dst RecordSink, src ColumnSource, keep func(row uint64) bool) error {
	cols := dst.Schema().Columns()
	readers := make([]column.Reader, len(cols))
	writers := make([]column.Writer, len(cols))

	for i, col := range cols {
		r, err := src.ColumnReader(col.Path)
		if err != nil {
			return err
		}

		if stored := r.Column(); stored.MaxRepetitionLevel != col.MaxRepetitionLevel ||
			stored.MaxDefinitionLevel != col.MaxDefinitionLevel || stored.Type != col.Type {
			return errors.WithFields(
				errors.WithStack(ErrConsistency),
				errors.Fields{
					"column": col.Path,
					"reason": "source column does not match destination",
				})
		}

		w, err := dst.ColumnWriter(col.Path)
		if err != nil {
			return err
		}

		readers[i] = r
		writers[i] = w
	}

	numRows := src.NumRows()

	for row := uint64(0); row < numRows; row++ {
		copyRow := keep == nil || keep(row)

		for i, r := range readers {
			var w column.Writer
			if copyRow {
				w = writers[i]
			}

			if err := copyRecord(r, w, row); err != nil {
				return err
			}
		}

		if copyRow {
			dst.AddRow()
		}
	}

	for _, r := range readers {
		if !r.EOF() {
			return errors.WithFields(
				errors.WithStack(ErrConsistency),
				errors.Fields{
					"column": r.Column().Path,
					"reason": "data after the last record",
				})
		}
	}

	return nil
}

// copyRecord moves the triples of one record from r to w, or drops them when
// w is nil.
func copyRecord(r column.Reader, w column.Writer, row uint64) error {
	if r.EOF() {
		return errors.WithFields(
			errors.WithStack(column.ErrTruncated),
			errors.Fields{
				"column": r.Column().Path,
				"row":    row,
			})
	}

	first := true

	for !r.EOF() {
		level, err := r.NextRepetitionLevel()
		if err != nil {
			return err
		}

		if first && level != 0 {
			return errors.WithFields(
				errors.WithStack(ErrConsistency),
				errors.Fields{
					"column": r.Column().Path,
					"row":    row,
					"r":      level,
				})
		}

		if !first && level == 0 {
			break
		}

		first = false

		if w == nil {
			err = r.Skip()
		} else {
			err = r.CopyTo(w)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
