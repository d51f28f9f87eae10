package schema

// Field is a node of the schema tree. Scalar fields become leaf columns,
// object fields only shape the tree.
type Field struct {
	ID       uint32
	Name     string
	Type     Type
	Encoding Encoding
	Repeated bool
	Optional bool
	Fields   []*Field
}

// NewScalar returns a required scalar field using the default encoding of t.
func NewScalar(id uint32, name string, t Type) *Field {
	return &Field{
		ID:   id,
		Name: name,
		Type: t,
	}
}

// NewObject returns a required object field.
func NewObject(id uint32, name string, fields ...*Field) *Field {
	return &Field{
		ID:     id,
		Name:   name,
		Type:   TypeObject,
		Fields: fields,
	}
}

// AsRepeated marks the field repeated and returns it.
func (f *Field) AsRepeated() *Field {
	f.Repeated = true
	return f
}

// AsOptional marks the field optional and returns it.
func (f *Field) AsOptional() *Field {
	f.Optional = true
	return f
}

// WithEncoding sets the field encoding and returns it.
func (f *Field) WithEncoding(e Encoding) *Field {
	f.Encoding = e
	return f
}

// IsObject reports whether the field holds nested fields.
func (f *Field) IsObject() bool {
	return f.Type == TypeObject
}

// Child returns the direct child field with the given id.
func (f *Field) Child(id uint32) (*Field, bool) {
	for _, c := range f.Fields {
		if c.ID == id {
			return c, true
		}
	}

	return nil, false
}
