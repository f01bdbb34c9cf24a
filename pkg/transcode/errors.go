package transcode

import "fmt"

// TypeMismatchError reports a field value whose JSON shape does not match
// the field's declared type.
type TypeMismatchError struct {
	Field  string
	Want   string
	Detail string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: want %s, got %s", e.Field, e.Want, e.Detail)
}

// OverflowError reports a numeric value that exceeds a field's declared
// width or decimal precision.
type OverflowError struct {
	Field  string
	Detail string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Detail)
}

// ParseError reports a malformed JSON line or malformed timestamp text.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return "parse: " + e.Detail
}
