package schema

// Ancestor is an object field on the path from the root to a leaf column.
type Ancestor struct {
	FieldID  uint32
	Name     string
	Repeated bool

	// RepetitionLevel is the repetition level introduced by this ancestor when
	// it is repeated, the level of its closest repeated ancestor otherwise.
	RepetitionLevel uint32

	// DefinitionLevel is the definition level at which this ancestor is present.
	DefinitionLevel uint32
}

// Column is a leaf of the schema tree, stored as one physical column.
type Column struct {
	ID       uint32
	Path     string
	Type     Type
	Encoding Encoding
	Repeated bool
	Optional bool

	MaxRepetitionLevel uint32
	MaxDefinitionLevel uint32

	// Ancestors lists the object fields from the root down to the leaf parent.
	Ancestors []Ancestor
}

// HasRepetitionLevels reports whether a repetition level stream is stored.
func (c *Column) HasRepetitionLevels() bool {
	return c.MaxRepetitionLevel > 0
}

// HasDefinitionLevels reports whether a definition level stream is stored.
func (c *Column) HasDefinitionLevels() bool {
	return c.MaxDefinitionLevel > 0
}
