package schema

import (
	"github.com/hexbee-net/errors"
	"gopkg.in/yaml.v3"
)

// Definition is the textual form of a schema.
//
//	fields:
//	  - id: 1
//	    name: items
//	    type: object
//	    repeated: true
//	    fields:
//	      - id: 2
//	        name: name
//	        type: string
type Definition struct {
	Fields []*FieldDefinition `yaml:"fields"`
}

type FieldDefinition struct {
	ID       uint32             `yaml:"id"`
	Name     string             `yaml:"name"`
	Type     string             `yaml:"type"`
	Encoding string             `yaml:"encoding,omitempty"`
	Repeated bool               `yaml:"repeated,omitempty"`
	Optional bool               `yaml:"optional,omitempty"`
	Fields   []*FieldDefinition `yaml:"fields,omitempty"`
}

// ParseDefinition parses a YAML schema definition and builds the schema.
func ParseDefinition(text []byte) (*Schema, error) {
	def := &Definition{}
	if err := yaml.Unmarshal(text, def); err != nil {
		return nil, errors.Wrap(err, "failed to parse schema definition")
	}

	fields, err := def.build(def.Fields)
	if err != nil {
		return nil, err
	}

	return New(fields...)
}

func (d *Definition) build(defs []*FieldDefinition) ([]*Field, error) {
	fields := make([]*Field, 0, len(defs))

	for _, fd := range defs {
		t, err := ParseType(fd.Type)
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"field": fd.Name})
		}

		enc, err := ParseEncoding(fd.Encoding)
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"field": fd.Name})
		}

		f := &Field{
			ID:       fd.ID,
			Name:     fd.Name,
			Type:     t,
			Encoding: enc,
			Repeated: fd.Repeated,
			Optional: fd.Optional,
		}

		if f.Fields, err = d.build(fd.Fields); err != nil {
			return nil, err
		}

		if len(f.Fields) == 0 {
			f.Fields = nil
		}

		fields = append(fields, f)
	}

	return fields, nil
}

// Definition renders the schema as a YAML definition accepted by
// ParseDefinition.
func (s *Schema) Definition() ([]byte, error) {
	def := &Definition{
		Fields: definitions(s.fields),
	}

	text, err := yaml.Marshal(def)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render schema definition")
	}

	return text, nil
}

func definitions(fields []*Field) []*FieldDefinition {
	res := make([]*FieldDefinition, 0, len(fields))

	for _, f := range fields {
		fd := &FieldDefinition{
			ID:       f.ID,
			Name:     f.Name,
			Type:     f.Type.String(),
			Repeated: f.Repeated,
			Optional: f.Optional,
		}

		if f.Encoding != EncodingDefault {
			fd.Encoding = f.Encoding.String()
		}

		if len(f.Fields) > 0 {
			fd.Fields = definitions(f.Fields)
		}

		res = append(res, fd)
	}

	return res
}
