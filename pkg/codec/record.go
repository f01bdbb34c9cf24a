package codec

import (
	"fmt"

	"github.com/ssargent/brokkr/pkg/schema"
)

// MissingFieldError reports a record that lacks a schema-declared field.
// Every schema field is required; there are no defaults.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// EncodeRecord serializes one record by walking the schema's fields in
// declared order and concatenating each field's encoding. The input map's
// own ordering is irrelevant; field order on the wire is always schema
// order, which is the only order a reader can decode.
func EncodeRecord(s *schema.Schema, fields map[string]Value) ([]byte, error) {
	buf := make([]byte, 0, 64)
	for _, f := range s.Fields {
		v, ok := fields[f.Name]
		if !ok {
			return nil, &MissingFieldError{Field: f.Name}
		}
		var err error
		buf, err = appendField(buf, f, v)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendField(dst []byte, f schema.Field, v Value) ([]byte, error) {
	if f.Logical != nil {
		switch f.Logical.Kind {
		case schema.LogicalTimestampMillis:
			if v.Kind != KindInstant {
				return nil, kindError(f, v)
			}
			return AppendLong(dst, TimestampMillis(v.Time)), nil
		case schema.LogicalDecimal:
			if v.Kind != KindDecimal {
				return nil, kindError(f, v)
			}
			return AppendBytes(dst, DecimalBytes(v.Unscaled)), nil
		}
	}

	switch f.Type {
	case schema.TypeNull:
		if v.Kind != KindNull {
			return nil, kindError(f, v)
		}
		return dst, nil
	case schema.TypeBoolean:
		if v.Kind != KindBool {
			return nil, kindError(f, v)
		}
		return AppendBoolean(dst, v.Bool), nil
	case schema.TypeInt, schema.TypeLong:
		if v.Kind != KindLong {
			return nil, kindError(f, v)
		}
		return AppendLong(dst, v.Long), nil
	case schema.TypeFloat:
		if v.Kind != KindDouble {
			return nil, kindError(f, v)
		}
		return AppendFloat(dst, float32(v.Double)), nil
	case schema.TypeDouble:
		if v.Kind != KindDouble {
			return nil, kindError(f, v)
		}
		return AppendDouble(dst, v.Double), nil
	case schema.TypeBytes:
		if v.Kind != KindBytes {
			return nil, kindError(f, v)
		}
		return AppendBytes(dst, v.Bytes), nil
	case schema.TypeString:
		if v.Kind != KindString {
			return nil, kindError(f, v)
		}
		return AppendString(dst, v.Str), nil
	}
	return nil, fmt.Errorf("field %q: unencodable physical type %s", f.Name, f.Type)
}

// kindError signals a coercion layer bug: the value handed to the encoder
// does not match the field's declared type.
func kindError(f schema.Field, v Value) error {
	return fmt.Errorf("field %q: value kind %d does not match declared type %s", f.Name, v.Kind, f.Type)
}
