package transcode

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/ssargent/brokkr/pkg/codec"
	"github.com/ssargent/brokkr/pkg/schema"
)

// coerceRecord maps a decoded JSON object onto the schema, producing one
// typed value per field present in the input. Keys the schema does not
// declare are ignored; schema fields absent from the input are left out
// and surface as MissingField when the record is encoded.
func coerceRecord(s *schema.Schema, raw map[string]interface{}) (map[string]codec.Value, error) {
	values := make(map[string]codec.Value, len(s.Fields))
	for _, f := range s.Fields {
		rv, ok := raw[f.Name]
		if !ok {
			continue
		}
		v, err := coerceField(f, rv)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}
	return values, nil
}

// coerceField converts one raw JSON value into the typed value a field's
// declared type requires. Numbers arrive as json.Number, so integer and
// decimal coercion work on the exact source text and never pass through
// a binary float.
func coerceField(f schema.Field, raw interface{}) (codec.Value, error) {
	if f.Logical != nil {
		switch f.Logical.Kind {
		case schema.LogicalTimestampMillis:
			s, ok := raw.(string)
			if !ok {
				return codec.Value{}, mismatch(f, "timestamp string", raw)
			}
			t, err := ParseTimestamp(s)
			if err != nil {
				return codec.Value{}, err
			}
			return codec.InstantValue(t), nil
		case schema.LogicalDecimal:
			n, ok := raw.(json.Number)
			if !ok {
				return codec.Value{}, mismatch(f, "number", raw)
			}
			return coerceDecimal(f, n)
		}
	}

	switch f.Type {
	case schema.TypeNull:
		if raw != nil {
			return codec.Value{}, mismatch(f, "null", raw)
		}
		return codec.NullValue(), nil
	case schema.TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return codec.Value{}, mismatch(f, "boolean", raw)
		}
		return codec.BoolValue(b), nil
	case schema.TypeInt:
		return coerceInteger(f, raw, math.MinInt32, math.MaxInt32)
	case schema.TypeLong:
		return coerceInteger(f, raw, math.MinInt64, math.MaxInt64)
	case schema.TypeFloat, schema.TypeDouble:
		n, ok := raw.(json.Number)
		if !ok {
			return codec.Value{}, mismatch(f, "number", raw)
		}
		fv, err := n.Float64()
		if err != nil {
			return codec.Value{}, &OverflowError{Field: f.Name, Detail: fmt.Sprintf("value %s does not fit a %s", n, f.Type)}
		}
		return codec.DoubleValue(fv), nil
	case schema.TypeBytes:
		s, ok := raw.(string)
		if !ok {
			return codec.Value{}, mismatch(f, "string", raw)
		}
		return codec.BytesValue([]byte(s)), nil
	case schema.TypeString:
		s, ok := raw.(string)
		if !ok {
			return codec.Value{}, mismatch(f, "string", raw)
		}
		return codec.StringValue(s), nil
	}
	return codec.Value{}, mismatch(f, f.Type.String(), raw)
}

// coerceInteger accepts any JSON number with a zero fractional part that
// fits the target width. Fractional values are a type mismatch; integral
// values out of range are an overflow.
func coerceInteger(f schema.Field, raw interface{}, min, max int64) (codec.Value, error) {
	n, ok := raw.(json.Number)
	if !ok {
		return codec.Value{}, mismatch(f, "integer", raw)
	}

	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err == nil {
		if v < min || v > max {
			return codec.Value{}, &OverflowError{Field: f.Name, Detail: fmt.Sprintf("value %d does not fit a %s", v, f.Type)}
		}
		return codec.LongValue(v), nil
	}
	if numErr, isNum := err.(*strconv.NumError); isNum && numErr.Err == strconv.ErrRange {
		return codec.Value{}, &OverflowError{Field: f.Name, Detail: fmt.Sprintf("value %s does not fit a %s", n, f.Type)}
	}

	// Not plain decimal digits: the lexical form carries a fraction or an
	// exponent. Fall back to an exact parse to tell the two apart.
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return codec.Value{}, mismatch(f, "integer", raw)
	}
	if !d.IsInteger() {
		return codec.Value{}, &TypeMismatchError{Field: f.Name, Want: "integer", Detail: fmt.Sprintf("fractional number %s", n)}
	}
	bi := d.BigInt()
	if bi.Cmp(big.NewInt(min)) < 0 || bi.Cmp(big.NewInt(max)) > 0 {
		return codec.Value{}, &OverflowError{Field: f.Name, Detail: fmt.Sprintf("value %s does not fit a %s", n, f.Type)}
	}
	return codec.LongValue(bi.Int64()), nil
}

// coerceDecimal parses the number's exact lexical form, rescales it to the
// field's declared scale with round-half-to-even, and checks the unscaled
// result against the declared precision.
func coerceDecimal(f schema.Field, n json.Number) (codec.Value, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return codec.Value{}, mismatch(f, "number", n.String())
	}

	lt := f.Logical
	scaled := d.RoundBank(int32(lt.Scale))
	unscaled := scaled.Shift(int32(lt.Scale)).BigInt()

	if decimalDigits(unscaled) > int(lt.Precision) {
		return codec.Value{}, &OverflowError{
			Field:  f.Name,
			Detail: fmt.Sprintf("value %s needs more than %d digits at scale %d", n, lt.Precision, lt.Scale),
		}
	}
	return codec.DecimalValue(unscaled, lt.Scale), nil
}

// decimalDigits counts the significant digits of an unscaled value.
// Zero counts as one digit.
func decimalDigits(n *big.Int) int {
	return len(strings.TrimPrefix(n.String(), "-"))
}

func mismatch(f schema.Field, want string, got interface{}) *TypeMismatchError {
	return &TypeMismatchError{Field: f.Name, Want: want, Detail: describe(got)}
}

func describe(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("boolean %v", v)
	case json.Number:
		return fmt.Sprintf("number %s", v)
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
