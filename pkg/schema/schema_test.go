package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clickstreamSchema = `{
	"type": "record",
	"name": "ClickstreamEvent",
	"fields": [
		{"name": "eventType", "type": "string"},
		{"name": "eventId", "type": "string"},
		{"name": "timestamp", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "userId", "type": "string"},
		{"name": "itemsInCart", "type": "int"},
		{"name": "totalValue", "type": {"type": "bytes", "logicalType": "decimal", "precision": 16, "scale": 2}}
	]
}`

func TestParse_Clickstream(t *testing.T) {
	s, err := Parse([]byte(clickstreamSchema))
	require.NoError(t, err)

	assert.Equal(t, "ClickstreamEvent", s.Name)
	require.Len(t, s.Fields, 6)

	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"eventType", "eventId", "timestamp", "userId", "itemsInCart", "totalValue"}, names)

	ts := s.Fields[2]
	assert.Equal(t, TypeLong, ts.Type)
	require.NotNil(t, ts.Logical)
	assert.Equal(t, LogicalTimestampMillis, ts.Logical.Kind)

	dec := s.Fields[5]
	assert.Equal(t, TypeBytes, dec.Type)
	require.NotNil(t, dec.Logical)
	assert.Equal(t, LogicalDecimal, dec.Logical.Kind)
	assert.Equal(t, uint32(16), dec.Logical.Precision)
	assert.Equal(t, uint32(2), dec.Logical.Scale)

	assert.Equal(t, []byte(clickstreamSchema), s.Source())
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{
			name: "malformed document",
			text: `{"type": "record",`,
		},
		{
			name: "top level not a record",
			text: `{"type": "string", "name": "S"}`,
		},
		{
			name: "record without name",
			text: `{"type": "record", "fields": [{"name": "a", "type": "string"}]}`,
		},
		{
			name: "record without fields",
			text: `{"type": "record", "name": "R", "fields": []}`,
		},
		{
			name: "field without name",
			text: `{"type": "record", "name": "R", "fields": [{"type": "string"}]}`,
		},
		{
			name: "field without type",
			text: `{"type": "record", "name": "R", "fields": [{"name": "a"}]}`,
		},
		{
			name: "unknown primitive type",
			text: `{"type": "record", "name": "R", "fields": [{"name": "a", "type": "varchar"}]}`,
		},
		{
			name: "union field type",
			text: `{"type": "record", "name": "R", "fields": [{"name": "a", "type": ["null", "string"]}]}`,
		},
		{
			name: "duplicate field names",
			text: `{"type": "record", "name": "R", "fields": [
				{"name": "a", "type": "string"}, {"name": "a", "type": "long"}]}`,
		},
		{
			name: "nested record field",
			text: `{"type": "record", "name": "R", "fields": [{"name": "a", "type": "record"}]}`,
		},
		{
			name: "type object without discriminator",
			text: `{"type": "record", "name": "R", "fields": [
				{"name": "a", "type": {"logicalType": "decimal", "precision": 4, "scale": 2}}]}`,
		},
		{
			name: "timestamp on wrong carrier",
			text: `{"type": "record", "name": "R", "fields": [
				{"name": "a", "type": {"type": "string", "logicalType": "timestamp-millis"}}]}`,
		},
		{
			name: "decimal on wrong carrier",
			text: `{"type": "record", "name": "R", "fields": [
				{"name": "a", "type": {"type": "long", "logicalType": "decimal", "precision": 4, "scale": 2}}]}`,
		},
		{
			name: "decimal without precision",
			text: `{"type": "record", "name": "R", "fields": [
				{"name": "a", "type": {"type": "bytes", "logicalType": "decimal", "scale": 2}}]}`,
		},
		{
			name: "decimal scale beyond precision",
			text: `{"type": "record", "name": "R", "fields": [
				{"name": "a", "type": {"type": "bytes", "logicalType": "decimal", "precision": 2, "scale": 4}}]}`,
		},
		{
			name: "unknown logical type",
			text: `{"type": "record", "name": "R", "fields": [
				{"name": "a", "type": {"type": "long", "logicalType": "duration"}}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse([]byte(tc.text))
			require.Error(t, err)
			assert.Nil(t, s)

			var schemaErr *SchemaError
			assert.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestParse_PlainLogicalFreeObjectType(t *testing.T) {
	s, err := Parse([]byte(`{"type": "record", "name": "R", "fields": [
		{"name": "a", "type": {"type": "double"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, TypeDouble, s.Fields[0].Type)
	assert.Nil(t, s.Fields[0].Logical)
}
