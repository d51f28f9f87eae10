package schema

import (
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

const definitionText = `
fields:
  - id: 1
    name: items
    type: object
    repeated: true
    fields:
      - id: 2
        name: name
        type: string
      - id: 3
        name: count
        type: uint
        encoding: uint32_bitpacked
        optional: true
  - id: 4
    name: seen
    type: datetime
`

func TestParseDefinition(t *testing.T) {
	s, err := ParseDefinition([]byte(definitionText))
	require.NoError(t, err)

	require.Len(t, s.Columns(), 3)

	c, ok := s.Column("items.count")
	require.True(t, ok)
	assert.Equal(t, uint32(3), c.ID)
	assert.Equal(t, EncodingUInt32BitPacked, c.Encoding)
	assert.Equal(t, uint32(1), c.MaxRepetitionLevel)
	assert.Equal(t, uint32(2), c.MaxDefinitionLevel)

	c, ok = s.Column("seen")
	require.True(t, ok)
	assert.Equal(t, TypeDateTime, c.Type)
}

func TestSchema_Definition_RoundTrip(t *testing.T) {
	s := testSchema(t)

	text, err := s.Definition()
	require.NoError(t, err)

	parsed, err := ParseDefinition(text)
	require.NoError(t, err)

	assert.Equal(t, s.Columns(), parsed.Columns())

	again, err := parsed.Definition()
	require.NoError(t, err)
	assert.Equal(t, string(text), string(again))
}

func TestParseDefinition_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"UnknownType", "fields:\n  - {id: 1, name: a, type: int128}\n", ErrInvalidField},
		{"UnknownEncoding", "fields:\n  - {id: 1, name: a, type: string, encoding: zigzag}\n", ErrUnsupportedEncoding},
		{"DuplicateID", "fields:\n  - {id: 1, name: a, type: string}\n  - {id: 1, name: b, type: string}\n", ErrDuplicateFieldID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDefinition([]byte(tt.text))
			assert.EqualError(t, errors.Cause(err), tt.err.Error())
		})
	}
}
