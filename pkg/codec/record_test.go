package codec

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ssargent/brokkr/pkg/schema"
)

const checkoutSchema = `{
	"type": "record",
	"name": "CheckoutEvent",
	"fields": [
		{"name": "eventType", "type": "string"},
		{"name": "itemsInCart", "type": "int"},
		{"name": "totalValue", "type": {"type": "bytes", "logicalType": "decimal", "precision": 16, "scale": 2}}
	]
}`

func mustParse(t *testing.T, text string) *schema.Schema {
	t.Helper()
	s, err := schema.Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return s
}

func TestEncodeRecord_CheckoutExample(t *testing.T) {
	s := mustParse(t, checkoutSchema)

	record, err := EncodeRecord(s, map[string]Value{
		"eventType":   StringValue("checkoutComplete"),
		"itemsInCart": LongValue(1),
		"totalValue":  DecimalValue(big.NewInt(2325), 2),
	})
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}

	var want []byte
	want = append(want, 0x20)                        // string length 16, zig-zag varint
	want = append(want, []byte("checkoutComplete")...)
	want = append(want, 0x02)                        // int 1
	want = append(want, 0x04, 0x09, 0x15)            // 2-byte decimal payload, unscaled 2325

	if !bytes.Equal(record, want) {
		t.Errorf("record bytes = %x, want %x", record, want)
	}
}

func TestEncodeRecord_SchemaOrderWins(t *testing.T) {
	// Two schemas over the same fields in opposite declared order must
	// produce different byte streams from the same input values.
	forward := mustParse(t, `{"type":"record","name":"R","fields":[
		{"name":"a","type":"string"},{"name":"b","type":"long"}]}`)
	reverse := mustParse(t, `{"type":"record","name":"R","fields":[
		{"name":"b","type":"long"},{"name":"a","type":"string"}]}`)

	values := map[string]Value{
		"a": StringValue("x"),
		"b": LongValue(7),
	}

	f, err := EncodeRecord(forward, values)
	if err != nil {
		t.Fatalf("EncodeRecord(forward) failed: %v", err)
	}
	r, err := EncodeRecord(reverse, values)
	if err != nil {
		t.Fatalf("EncodeRecord(reverse) failed: %v", err)
	}

	wantForward := []byte{0x02, 'x', 0x0E}
	wantReverse := []byte{0x0E, 0x02, 'x'}
	if !bytes.Equal(f, wantForward) {
		t.Errorf("forward bytes = %x, want %x", f, wantForward)
	}
	if !bytes.Equal(r, wantReverse) {
		t.Errorf("reverse bytes = %x, want %x", r, wantReverse)
	}
}

func TestEncodeRecord_AllPhysicalTypes(t *testing.T) {
	s := mustParse(t, `{"type":"record","name":"R","fields":[
		{"name":"n","type":"null"},
		{"name":"ok","type":"boolean"},
		{"name":"count","type":"int"},
		{"name":"total","type":"long"},
		{"name":"ratio","type":"float"},
		{"name":"exact","type":"double"},
		{"name":"blob","type":"bytes"},
		{"name":"label","type":"string"},
		{"name":"at","type":{"type":"long","logicalType":"timestamp-millis"}}]}`)

	record, err := EncodeRecord(s, map[string]Value{
		"n":     NullValue(),
		"ok":    BoolValue(true),
		"count": LongValue(-3),
		"total": LongValue(1000),
		"ratio": DoubleValue(1.0),
		"exact": DoubleValue(1.0),
		"blob":  BytesValue([]byte{0xAB}),
		"label": StringValue("hi"),
		"at":    InstantValue(time.Unix(0, 0).UTC()),
	})
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}

	var want []byte
	// null contributes nothing
	want = append(want, 0x01)                                           // boolean true
	want = append(want, 0x05)                                           // int -3
	want = append(want, 0xD0, 0x0F)                                     // long 1000
	want = append(want, 0x00, 0x00, 0x80, 0x3F)                         // float 1.0 LE
	want = append(want, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F) // double 1.0 LE
	want = append(want, 0x02, 0xAB)                                     // bytes, length 1
	want = append(want, 0x04, 'h', 'i')                                 // string, length 2
	want = append(want, 0x00)                                           // timestamp 0 ms

	if !bytes.Equal(record, want) {
		t.Errorf("record bytes = %x, want %x", record, want)
	}
}

func TestEncodeRecord_MissingField(t *testing.T) {
	s := mustParse(t, checkoutSchema)

	_, err := EncodeRecord(s, map[string]Value{
		"eventType":   StringValue("checkoutComplete"),
		"itemsInCart": LongValue(1),
	})
	if err == nil {
		t.Fatal("expected error for missing field")
	}

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %T: %v", err, err)
	}
	if missing.Field != "totalValue" {
		t.Errorf("missing field = %q, want totalValue", missing.Field)
	}
}

func TestEncodeRecord_KindMismatch(t *testing.T) {
	s := mustParse(t, checkoutSchema)

	_, err := EncodeRecord(s, map[string]Value{
		"eventType":   LongValue(1), // wrong kind on purpose
		"itemsInCart": LongValue(1),
		"totalValue":  DecimalValue(big.NewInt(2325), 2),
	})
	if err == nil {
		t.Fatal("expected error for mismatched value kind")
	}
}
