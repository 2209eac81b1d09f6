package codec

import (
	"fmt"
)

// UnsupportedFieldTypeError is returned when decoding a column whose type
// code the decoder does not know.
type UnsupportedFieldTypeError struct {
	Field string
	Tag   TypeTag
}

func (e *UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("unsupported field type %s for field %q", e.Tag, e.Field)
}

// ColumnCountMismatchError is returned by SetAll when the value count does
// not match the schema.
type ColumnCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch: schema has %d fields, got %d values", e.Expected, e.Actual)
}

// NumericParseError reports numeric column text that does not parse as the
// column's declared type.
type NumericParseError struct {
	Field    string
	Declared DeclaredType
	Text     string
	Err      error
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("field %q: cannot parse %q as %s: %v", e.Field, e.Text, e.Declared, e.Err)
}

func (e *NumericParseError) Unwrap() error {
	return e.Err
}
