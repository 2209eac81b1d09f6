package codec

import (
	"errors"
	"fmt"

	"github.com/spaddlewit/DotSpatial/pkg/numfmt"
)

// ErrInvalidField is returned by SchemaBuilder.Build for a malformed field.
var ErrInvalidField = errors.New("invalid field")

// maxFieldName is the dBASE limit for a column name.
const maxFieldName = 10

// deletionFlagWidth is the leading byte of every record that marks deletion.
const deletionFlagWidth = 1

// Schema is an ordered set of fields sharing one record layout. It is never
// mutated after construction and may be shared between goroutines.
type Schema struct {
	fields       []Field
	index        map[string]int
	recordLength int
}

// NewSchema wraps fields as given. Offsets and lengths are trusted; use
// SchemaBuilder to have them computed and checked.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)
	for i, f := range s.fields {
		if _, dup := s.index[f.Name]; !dup {
			s.index[f.Name] = i
		}
		if f.end() > s.recordLength {
			s.recordLength = f.end()
		}
	}
	return s
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns the i-th field.
func (s *Schema) Field(i int) Field { return s.fields[i] }

// Fields returns a copy of the fields in schema order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Index returns the position of the named field, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// RecordLength is the buffer size one row of this schema needs.
func (s *Schema) RecordLength() int { return s.recordLength }

// SchemaBuilder lays fields out back to back after the deletion flag byte.
type SchemaBuilder struct {
	fields []Field
	offset int
	err    error
}

// NewSchemaBuilder returns an empty builder.
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{offset: deletionFlagWidth}
}

// Add appends a field, inferring its declared type and numeric formatter.
func (b *SchemaBuilder) Add(name string, tag TypeTag, length, decimals int) *SchemaBuilder {
	return b.AddField(Field{
		Name:         name,
		Tag:          tag,
		Length:       length,
		DecimalCount: decimals,
	})
}

// AddField appends f at the next free offset. A zero Declared or nil
// Formatter is filled in from the tag, length and decimal count.
func (b *SchemaBuilder) AddField(f Field) *SchemaBuilder {
	if b.err != nil {
		return b
	}
	switch {
	case f.Name == "":
		b.err = fmt.Errorf("%w: field %d has no name", ErrInvalidField, len(b.fields))
	case len(f.Name) > maxFieldName:
		b.err = fmt.Errorf("%w: name %q longer than %d bytes", ErrInvalidField, f.Name, maxFieldName)
	case f.Length <= 0:
		b.err = fmt.Errorf("%w: %s has length %d", ErrInvalidField, f.Name, f.Length)
	case f.DecimalCount < 0 || (f.DecimalCount > 0 && f.DecimalCount >= f.Length):
		b.err = fmt.Errorf("%w: %s has %d decimals for length %d", ErrInvalidField, f.Name, f.DecimalCount, f.Length)
	}
	if b.err != nil {
		return b
	}
	for _, existing := range b.fields {
		if existing.Name == f.Name {
			b.err = fmt.Errorf("%w: duplicate name %q", ErrInvalidField, f.Name)
			return b
		}
	}

	if f.Declared == TypeUnknown {
		f.Declared = InferDeclaredType(f.Tag, f.Length, f.DecimalCount)
	}
	if f.Formatter == nil && (f.Tag == TagNumeric || f.Tag == TagFloat) {
		f.Formatter = numfmt.ForField(f.Length, f.DecimalCount)
	}
	f.Offset = b.offset
	b.offset += f.Length
	b.fields = append(b.fields, f)
	return b
}

// Build returns the schema or the first error recorded while adding fields.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := NewSchema(b.fields...)
	s.recordLength = b.offset
	return s, nil
}

// InferDeclaredType picks the narrowest value type that can hold every value
// a column of this shape can store.
func InferDeclaredType(tag TypeTag, length, decimals int) DeclaredType {
	switch tag {
	case TagLogical:
		return TypeBool
	case TagCharacter:
		return TypeString
	case TagDate:
		return TypeDate
	case TagFloat:
		return TypeDouble
	case TagNumeric:
		if decimals > 0 {
			if length > 15 {
				return TypeDecimal
			}
			return TypeDouble
		}
		switch {
		case length < 5:
			return TypeInt16
		case length < 10:
			return TypeInt32
		case length < 19:
			return TypeInt64
		default:
			return TypeDecimal
		}
	}
	return TypeUnknown
}
