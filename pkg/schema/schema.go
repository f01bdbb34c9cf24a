package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// PhysicalType identifies the binary encoding category of a field.
type PhysicalType int

const (
	TypeNull PhysicalType = iota
	TypeBoolean
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeBytes
	TypeString
	TypeRecord
)

// String returns the schema-text name of the physical type.
func (t PhysicalType) String() string {
	return [...]string{
		"null", "boolean", "int", "long",
		"float", "double", "bytes", "string", "record",
	}[t]
}

// LogicalKind identifies a logical-type annotation.
type LogicalKind int

const (
	// LogicalTimestampMillis is an instant carried as epoch milliseconds in a long.
	LogicalTimestampMillis LogicalKind = iota
	// LogicalDecimal is a fixed-point number carried as two's-complement bytes.
	LogicalDecimal
)

// LogicalType annotates a physical type with domain meaning and its parameters.
type LogicalType struct {
	Kind      LogicalKind
	Precision uint32 // decimal only: max significant digits
	Scale     uint32 // decimal only: digits after the point
}

// Field is a single named, typed slot in a record schema.
type Field struct {
	Name    string
	Type    PhysicalType
	Logical *LogicalType // nil when the field is purely physical
}

// Schema is an ordered, immutable set of uniquely named fields.
type Schema struct {
	Name   string
	Fields []Field

	source []byte
}

// Source returns the raw schema document the Schema was parsed from.
// The container header embeds this verbatim so readers can reconstruct
// field order and types.
func (s *Schema) Source() []byte {
	return s.source
}

// SchemaError reports a malformed or internally inconsistent schema document.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string {
	return "schema: " + e.Message
}

func errorf(format string, args ...interface{}) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf(format, args...)}
}

// wire shapes for the schema document
type rawSchema struct {
	Type   string     `json:"type"`
	Name   string     `json:"name"`
	Fields []rawField `json:"fields"`
}

type rawField struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

type rawType struct {
	Type        string `json:"type"`
	LogicalType string `json:"logicalType"`
	Precision   uint32 `json:"precision"`
	Scale       uint32 `json:"scale"`
}

var physicalNames = map[string]PhysicalType{
	"null":    TypeNull,
	"boolean": TypeBoolean,
	"int":     TypeInt,
	"long":    TypeLong,
	"float":   TypeFloat,
	"double":  TypeDouble,
	"bytes":   TypeBytes,
	"string":  TypeString,
	"record":  TypeRecord,
}

// Parse reads a record schema document and returns its validated model.
// The document is JSON of the form:
//
//	{"type": "record", "name": "...", "fields": [
//	    {"name": "...", "type": "string"},
//	    {"name": "...", "type": {"type": "bytes", "logicalType": "decimal", "precision": 16, "scale": 2}}
//	]}
//
// Parse has no side effects; a returned Schema never changes afterwards.
func Parse(text []byte) (*Schema, error) {
	var raw rawSchema
	if err := json.Unmarshal(text, &raw); err != nil {
		return nil, errorf("malformed document: %v", err)
	}
	if raw.Type != "record" {
		return nil, errorf("top-level type must be %q, got %q", "record", raw.Type)
	}
	if raw.Name == "" {
		return nil, errorf("record schema has no name")
	}
	if len(raw.Fields) == 0 {
		return nil, errorf("record %q declares no fields", raw.Name)
	}

	s := &Schema{
		Name:   raw.Name,
		Fields: make([]Field, 0, len(raw.Fields)),
		source: append([]byte(nil), text...),
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for i, rf := range raw.Fields {
		if rf.Name == "" {
			return nil, errorf("field %d has no name", i)
		}
		if _, dup := seen[rf.Name]; dup {
			return nil, errorf("duplicate field name %q", rf.Name)
		}
		seen[rf.Name] = struct{}{}

		f, err := parseFieldType(rf.Name, rf.Type)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, f)
	}

	return s, nil
}

func parseFieldType(name string, text json.RawMessage) (Field, error) {
	if len(text) == 0 {
		return Field{}, errorf("field %q has no type", name)
	}

	// A field type is either a primitive name or an annotated object.
	var prim string
	if err := json.Unmarshal(text, &prim); err == nil {
		pt, ok := physicalNames[prim]
		if !ok {
			return Field{}, errorf("field %q: unknown type %q", name, prim)
		}
		if pt == TypeRecord {
			return Field{}, errorf("field %q: nested records are not supported", name)
		}
		return Field{Name: name, Type: pt}, nil
	}

	var rt rawType
	if err := json.Unmarshal(text, &rt); err != nil {
		return Field{}, errorf("field %q: type must be a name or a type object", name)
	}
	if rt.Type == "" {
		return Field{}, errorf("field %q: type object has no type discriminator", name)
	}
	pt, ok := physicalNames[rt.Type]
	if !ok {
		return Field{}, errorf("field %q: unknown type %q", name, rt.Type)
	}
	if pt == TypeRecord {
		return Field{}, errorf("field %q: nested records are not supported", name)
	}
	if rt.LogicalType == "" {
		return Field{Name: name, Type: pt}, nil
	}

	switch rt.LogicalType {
	case "timestamp-millis":
		if pt != TypeLong {
			return Field{}, errorf("field %q: timestamp-millis requires carrier type long, got %s", name, pt)
		}
		return Field{Name: name, Type: pt, Logical: &LogicalType{Kind: LogicalTimestampMillis}}, nil
	case "decimal":
		if pt != TypeBytes {
			return Field{}, errorf("field %q: decimal requires carrier type bytes, got %s", name, pt)
		}
		if rt.Precision == 0 {
			return Field{}, errorf("field %q: decimal precision must be at least 1", name)
		}
		if rt.Scale > rt.Precision {
			return Field{}, errorf("field %q: decimal scale %d exceeds precision %d", name, rt.Scale, rt.Precision)
		}
		return Field{Name: name, Type: pt, Logical: &LogicalType{
			Kind:      LogicalDecimal,
			Precision: rt.Precision,
			Scale:     rt.Scale,
		}}, nil
	default:
		return Field{}, errorf("field %q: unknown logical type %q", name, rt.LogicalType)
	}
}
