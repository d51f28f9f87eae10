// Package column reads and writes the (repetition level, definition level,
// value) triples of one leaf column.
package column

import (
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/types"
	"github.com/hexbee-net/errors"
)

const (
	ErrUnsupportedEncoding = errors.Error("unsupported column encoding")
	ErrTruncated           = errors.Error("column truncated")
	ErrLevelOutOfRange     = errors.Error("level out of range")

	errValueKind = errors.Error("value does not match column type")
)

// Triple is one entry of a column stream. Value is only set when Defined.
type Triple struct {
	R       uint32
	D       uint32
	Defined bool
	Value   record.Value
}

// Reader is a sequential cursor over the triples of a column.
type Reader interface {
	// Read consumes the next triple.
	Read() (Triple, error)
	// Skip consumes the next triple without decoding it for the caller.
	Skip() error
	// CopyTo consumes the next triple and writes it to w.
	CopyTo(w Writer) error
	// EOF reports whether every triple has been consumed.
	EOF() bool
	// NextRepetitionLevel returns the repetition level of the next triple
	// without consuming it.
	NextRepetitionLevel() (uint32, error)

	Column() *schema.Column
}

// Writer appends triples to a column.
type Writer interface {
	WriteValue(r, d uint32, v record.Value) error
	WriteNull(r, d uint32) error
}

func checkLevels(col *schema.Column, r, d uint32) error {
	if r > col.MaxRepetitionLevel || d > col.MaxDefinitionLevel {
		return errors.WithFields(
			errors.WithStack(ErrLevelOutOfRange),
			errors.Fields{
				"column": col.Path,
				"r":      r,
				"d":      d,
				"r-max":  col.MaxRepetitionLevel,
				"d-max":  col.MaxDefinitionLevel,
			})
	}

	return nil
}

func checkValue(col *schema.Column, r, d uint32, v record.Value) error {
	if err := checkLevels(col, r, d); err != nil {
		return err
	}

	if d != col.MaxDefinitionLevel {
		return errors.WithFields(
			errors.WithStack(ErrLevelOutOfRange),
			errors.Fields{
				"column": col.Path,
				"d":      d,
				"reason": "value below the maximum definition level",
			})
	}

	if v.Kind() != types.Kind(col.Type) {
		return errors.WithFields(
			errors.WithStack(errValueKind),
			errors.Fields{
				"column":   col.Path,
				"expected": types.Kind(col.Type).String(),
				"actual":   v.Kind().String(),
			})
	}

	if err := types.CheckValue(col.Encoding, v); err != nil {
		return errors.WithFields(
			err,
			errors.Fields{
				"column":   col.Path,
				"encoding": col.Encoding.String(),
			})
	}

	return nil
}

func checkNull(col *schema.Column, r, d uint32) error {
	if err := checkLevels(col, r, d); err != nil {
		return err
	}

	if d == col.MaxDefinitionLevel {
		return errors.WithFields(
			errors.WithStack(ErrLevelOutOfRange),
			errors.Fields{
				"column": col.Path,
				"d":      d,
				"reason": "null at the maximum definition level",
			})
	}

	return nil
}

func truncated(col *schema.Column) error {
	return errors.WithFields(
		errors.WithStack(ErrTruncated),
		errors.Fields{
			"column": col.Path,
		})
}

func copyTriple(t Triple, w Writer) error {
	if t.Defined {
		return w.WriteValue(t.R, t.D, t.Value)
	}

	return w.WriteNull(t.R, t.D)
}
