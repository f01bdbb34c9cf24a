package codec

import (
	"math/big"
	"time"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindLong
	KindDouble
	KindString
	KindBytes
	KindInstant
	KindDecimal
)

// Value is a coerced, typed field value ready for encoding. It is the
// boundary between the coercion layer, which validates raw input against
// a schema, and the encoder, which only sees well-formed values.
type Value struct {
	Kind Kind

	Bool   bool
	Long   int64 // int and long fields
	Double float64
	Str    string
	Bytes  []byte
	Time   time.Time // timestamp-millis fields

	// decimal fields: the value is Unscaled / 10^Scale
	Unscaled *big.Int
	Scale    uint32
}

// NullValue returns the null variant.
func NullValue() Value { return Value{Kind: KindNull} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// LongValue wraps an integer. Both int and long fields use this variant;
// the narrower width is range-checked during coercion.
func LongValue(v int64) Value { return Value{Kind: KindLong, Long: v} }

// DoubleValue wraps a float. Both float and double fields use this variant.
func DoubleValue(f float64) Value { return Value{Kind: KindDouble, Double: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BytesValue wraps raw bytes.
func BytesValue(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// InstantValue wraps an instant for a timestamp-millis field.
func InstantValue(t time.Time) Value { return Value{Kind: KindInstant, Time: t} }

// DecimalValue wraps an unscaled integer and its scale for a decimal field.
func DecimalValue(unscaled *big.Int, scale uint32) Value {
	return Value{Kind: KindDecimal, Unscaled: unscaled, Scale: scale}
}
