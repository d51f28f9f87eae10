package schema

import (
	"strings"

	"github.com/hexbee-net/errors"
)

const pathSeparator = "."

// Schema describes a nested record type. It is immutable once built and can be
// shared by any number of readers and writers.
type Schema struct {
	fields  []*Field
	byID    map[uint32]*Field
	columns []*Column
	byPath  map[string]*Column
}

// New builds a schema from its top-level fields and derives the leaf columns.
func New(fields ...*Field) (*Schema, error) {
	s := &Schema{
		fields: fields,
		byID:   make(map[uint32]*Field),
		byPath: make(map[string]*Column),
	}

	if err := s.walk(fields, "", nil, 0, 0); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Schema) walk(fields []*Field, prefix string, ancestors []Ancestor, rmax, dmax uint32) error {
	names := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		path := f.Name
		if prefix != "" {
			path = prefix + pathSeparator + f.Name
		}

		if err := s.check(f, path); err != nil {
			return err
		}

		if _, ok := names[f.Name]; ok {
			return errors.WithFields(
				errors.WithStack(ErrInvalidField),
				errors.Fields{
					"id":     f.ID,
					"path":   path,
					"reason": "duplicate name",
				})
		}
		names[f.Name] = struct{}{}
		s.byID[f.ID] = f

		r, d := rmax, dmax
		if f.Repeated {
			r++
		}

		if f.Repeated || f.Optional {
			d++
		}

		if f.IsObject() {
			chain := make([]Ancestor, len(ancestors), len(ancestors)+1)
			copy(chain, ancestors)

			chain = append(chain, Ancestor{
				FieldID:         f.ID,
				Name:            f.Name,
				Repeated:        f.Repeated,
				RepetitionLevel: r,
				DefinitionLevel: d,
			})

			if err := s.walk(f.Fields, path, chain, r, d); err != nil {
				return err
			}

			continue
		}

		enc := f.Encoding
		if enc == EncodingDefault {
			enc = DefaultEncoding(f.Type)
		}

		col := &Column{
			ID:                 f.ID,
			Path:               path,
			Type:               f.Type,
			Encoding:           enc,
			Repeated:           f.Repeated,
			Optional:           f.Optional,
			MaxRepetitionLevel: r,
			MaxDefinitionLevel: d,
			Ancestors:          ancestors,
		}

		s.columns = append(s.columns, col)
		s.byPath[path] = col
	}

	return nil
}

func (s *Schema) check(f *Field, path string) error {
	if f == nil {
		return errors.WithFields(
			errors.WithStack(ErrInvalidField),
			errors.Fields{
				"path":   path,
				"reason": "nil field",
			})
	}

	if f.ID == 0 {
		return errors.WithFields(
			errors.WithStack(ErrInvalidFieldID),
			errors.Fields{
				"path": path,
			})
	}

	if other, ok := s.byID[f.ID]; ok {
		return errors.WithFields(
			errors.WithStack(ErrDuplicateFieldID),
			errors.Fields{
				"id":    f.ID,
				"path":  path,
				"other": other.Name,
			})
	}

	invalid := func(reason string) error {
		return errors.WithFields(
			errors.WithStack(ErrInvalidField),
			errors.Fields{
				"id":     f.ID,
				"path":   path,
				"reason": reason,
			})
	}

	switch {
	case f.Name == "" || strings.Contains(f.Name, pathSeparator):
		return invalid("invalid name")
	case !f.Type.Valid():
		return invalid("unknown type")
	case f.IsObject() && len(f.Fields) == 0:
		return invalid("object without fields")
	case !f.IsObject() && len(f.Fields) > 0:
		return invalid("scalar with fields")
	case f.IsObject() && f.Encoding != EncodingDefault:
		return invalid("object with encoding")
	}

	if !f.IsObject() && f.Encoding != EncodingDefault && !Supports(f.Encoding, f.Type) {
		return errors.WithFields(
			errors.WithStack(ErrUnsupportedEncoding),
			errors.Fields{
				"id":       f.ID,
				"path":     path,
				"type":     f.Type.String(),
				"encoding": f.Encoding.String(),
			})
	}

	return nil
}

// Fields returns the top-level fields.
func (s *Schema) Fields() []*Field {
	return s.fields
}

// Field returns the field with the given id, anywhere in the tree.
func (s *Schema) Field(id uint32) (*Field, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// Columns returns the leaf columns in depth-first order.
func (s *Schema) Columns() []*Column {
	return s.columns
}

// Column returns the leaf column with the given dotted path.
func (s *Schema) Column(path string) (*Column, bool) {
	c, ok := s.byPath[path]
	return c, ok
}

// Project returns the leaf columns matching paths, in schema order. A path
// naming an object field selects every leaf beneath it. No path selects every
// column.
func (s *Schema) Project(paths ...string) ([]*Column, error) {
	if len(paths) == 0 {
		return s.columns, nil
	}

	selected := make(map[string]struct{}, len(paths))

	for _, p := range paths {
		found := false

		for _, c := range s.columns {
			if c.Path == p || strings.HasPrefix(c.Path, p+pathSeparator) {
				selected[c.Path] = struct{}{}
				found = true
			}
		}

		if !found {
			return nil, errors.WithFields(
				errors.WithStack(ErrUnknownField),
				errors.Fields{
					"path": p,
				})
		}
	}

	res := make([]*Column, 0, len(selected))

	for _, c := range s.columns {
		if _, ok := selected[c.Path]; ok {
			res = append(res, c)
		}
	}

	return res, nil
}
