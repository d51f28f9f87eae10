package cstable

import (
	"github.com/hexbee-net/cstable/column"
	"github.com/hexbee-net/cstable/internal/metrics"
	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/types"
	"github.com/hexbee-net/errors"
)

// RecordShredder splits records into the columns of a sink.
type RecordShredder struct {
	sink    RecordSink
	schema  *schema.Schema
	writers map[uint32]column.Writer
	columns map[uint32]*schema.Column
	// leaves lists the leaf column ids beneath every field.
	leaves map[uint32][]uint32
}

func NewRecordShredder(sink RecordSink) (*RecordShredder, error) {
	s := &RecordShredder{
		sink:    sink,
		schema:  sink.Schema(),
		writers: make(map[uint32]column.Writer),
		columns: make(map[uint32]*schema.Column),
		leaves:  make(map[uint32][]uint32),
	}

	for _, col := range s.schema.Columns() {
		w, err := sink.ColumnWriter(col.Path)
		if err != nil {
			return nil, err
		}

		s.writers[col.ID] = w
		s.columns[col.ID] = col
		s.leaves[col.ID] = []uint32{col.ID}

		for _, a := range col.Ancestors {
			s.leaves[a.FieldID] = append(s.leaves[a.FieldID], col.ID)
		}
	}

	return s, nil
}

// AddRecord validates rec against the schema, then appends it to every
// column. An invalid record leaves the columns untouched.
func (s *RecordShredder) AddRecord(rec *record.Record) error {
	if err := s.shred(rec, record.Root, s.schema.Fields(), 0, 0, 0, false); err != nil {
		return err
	}

	if err := s.shred(rec, record.Root, s.schema.Fields(), 0, 0, 0, true); err != nil {
		return err
	}

	s.sink.AddRow()
	metrics.RecordsShredded.Inc()

	return nil
}

// shred walks the children of node. r is the repetition level of the first
// occurrence of each field, rmax and d the levels of node itself.
func (s *RecordShredder) shred(rec *record.Record, node record.NodeID, fields []*schema.Field, r, rmax, d uint32, write bool) error {
	if !write {
		if err := checkUnknown(rec, node, fields); err != nil {
			return err
		}
	}

	for _, f := range fields {
		fieldRMax := rmax
		if f.Repeated {
			fieldRMax++
		}

		fieldD := d
		if f.Repeated || f.Optional {
			fieldD++
		}

		occurrences := rec.ChildrenWithID(node, f.ID)

		if len(occurrences) == 0 {
			if !f.Repeated && !f.Optional {
				return errors.WithFields(
					errors.WithStack(ErrMissingField),
					errors.Fields{
						"id":   f.ID,
						"name": f.Name,
					})
			}

			if write {
				if err := s.writeNull(f, r, d); err != nil {
					return err
				}
			}

			continue
		}

		if len(occurrences) > 1 && !f.Repeated {
			return errors.WithFields(
				errors.WithStack(ErrUnexpectedRepetition),
				errors.Fields{
					"id":          f.ID,
					"name":        f.Name,
					"occurrences": len(occurrences),
				})
		}

		nextR := r

		for _, child := range occurrences {
			if f.IsObject() {
				if !rec.IsObject(child) {
					return typeMismatch(f, rec.Value(child).Kind())
				}

				if err := s.shred(rec, child, f.Fields, nextR, fieldRMax, fieldD, write); err != nil {
					return err
				}
			} else {
				v := rec.Value(child)
				if rec.IsObject(child) || v.Kind() != types.Kind(f.Type) {
					return typeMismatch(f, v.Kind())
				}

				if err := types.CheckValue(s.columns[f.ID].Encoding, v); err != nil {
					return errors.WithFields(
						errors.WithStack(ErrTypeMismatch),
						errors.Fields{
							"id":       f.ID,
							"name":     f.Name,
							"encoding": s.columns[f.ID].Encoding.String(),
							"cause":    err.Error(),
						})
				}

				if write {
					if err := s.writers[f.ID].WriteValue(nextR, fieldD, v); err != nil {
						return err
					}
				}
			}

			nextR = fieldRMax
		}
	}

	return nil
}

func (s *RecordShredder) writeNull(f *schema.Field, r, d uint32) error {
	for _, id := range s.leaves[f.ID] {
		if err := s.writers[id].WriteNull(r, d); err != nil {
			return err
		}
	}

	return nil
}

func checkUnknown(rec *record.Record, node record.NodeID, fields []*schema.Field) error {
	for _, id := range rec.FieldIDs(node) {
		known := false

		for _, f := range fields {
			if f.ID == id {
				known = true
				break
			}
		}

		if !known {
			return errors.WithFields(
				errors.WithStack(schema.ErrUnknownField),
				errors.Fields{
					"id": id,
				})
		}
	}

	return nil
}

func typeMismatch(f *schema.Field, actual record.Kind) error {
	return errors.WithFields(
		errors.WithStack(ErrTypeMismatch),
		errors.Fields{
			"id":       f.ID,
			"name":     f.Name,
			"expected": f.Type.String(),
			"actual":   actual.String(),
		})
}
