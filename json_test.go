package cstable

import (
	"testing"

	"github.com/hexbee-net/cstable/record"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestMarshalRecordJSON(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)
	recs := paperRecords()

	data, err := MarshalRecordJSON(s, recs[1])
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"DocId": 20,
		"Active": false,
		"Score": 0.5,
		"Created": 1600000000000000,
		"Links": {"Backward": [10, 30], "Forward": [80]},
		"Name": [{"Url": "http://C"}]
	}`, string(data))
}

func TestRecordJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)
	recs := append(paperRecords(), randomRecords(13, s, 50)...)

	for i, rec := range recs {
		data, err := MarshalRecordJSON(s, rec)
		require.NoError(t, err)

		got, err := UnmarshalRecordJSON(s, data)
		require.NoError(t, err)

		assert.True(t, record.Equal(rec, got), "record %d: %s", i, data)
	}
}

func TestUnmarshalRecordJSON(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)

	rec, err := UnmarshalRecordJSON(s, []byte(`{
		"DocId": 7,
		"Active": true,
		"Score": null,
		"Created": "2020-09-13T12:26:40Z",
		"Name": [{}, {"Language": [{"Code": "fr"}]}]
	}`))
	require.NoError(t, err)

	expected := record.New()
	expected.AddValue(record.Root, 1, record.UInt(7))
	expected.AddValue(record.Root, 11, record.Bool(true))
	expected.AddValue(record.Root, 12, record.UInt(1600000000000000))
	expected.AddObject(record.Root, 5)
	name := expected.AddObject(record.Root, 5)
	expected.AddValue(expected.AddObject(name, 6), 7, record.String("fr"))

	assert.True(t, record.Equal(expected, rec), rec.String())
}

func TestUnmarshalRecordJSON_Errors(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)

	tests := []struct {
		name     string
		data     string
		expected error
	}{
		{"unknown field", `{"DocId": 1, "Title": "x"}`, schema.ErrUnknownField},
		{"unknown nested field", `{"Links": {"Up": [1]}}`, schema.ErrUnknownField},
		{"string for uint", `{"DocId": "1"}`, ErrTypeMismatch},
		{"negative uint", `{"DocId": -1}`, ErrTypeMismatch},
		{"fractional uint", `{"DocId": 1.5}`, ErrTypeMismatch},
		{"scalar for repeated", `{"Name": {"Url": "x"}}`, ErrTypeMismatch},
		{"scalar for object", `{"Links": 3}`, ErrTypeMismatch},
		{"number for bool", `{"Active": 1}`, ErrTypeMismatch},
		{"invalid datetime", `{"Created": "yesterday"}`, ErrTypeMismatch},
		{"datetime before epoch", `{"Created": "1960-01-01T00:00:00Z"}`, ErrTypeMismatch},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := UnmarshalRecordJSON(s, []byte(tt.data))
			assert.Equal(t, tt.expected, errors.Cause(err))
		})
	}

	_, err := UnmarshalRecordJSON(s, []byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestMarshalRecordJSON_UnknownField(t *testing.T) {
	t.Parallel()

	s := documentSchema(t)

	rec := record.New()
	rec.AddValue(record.Root, 99, record.UInt(1))

	_, err := MarshalRecordJSON(s, rec)
	assert.Equal(t, schema.ErrUnknownField, errors.Cause(err))
}
