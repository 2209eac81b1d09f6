package codec

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TypeTag is the single-byte dBASE column type code.
type TypeTag byte

// Column type codes. TagFloat columns can be written but decode as
// unsupported.
const (
	TagLogical   TypeTag = 'L'
	TagCharacter TypeTag = 'C'
	TagDate      TypeTag = 'D'
	TagNumeric   TypeTag = 'N'
	TagFloat     TypeTag = 'F'
)

// TagKind is the closed set of decode behaviours a TypeTag maps to.
type TagKind int

const (
	KindUnsupported TagKind = iota
	KindLogical
	KindCharacter
	KindDate
	KindNumeric
)

// Kind classifies the tag for decoding.
func (t TypeTag) Kind() TagKind {
	switch t {
	case TagLogical:
		return KindLogical
	case TagCharacter:
		return KindCharacter
	case TagDate:
		return KindDate
	case TagNumeric:
		return KindNumeric
	default:
		return KindUnsupported
	}
}

func (t TypeTag) String() string {
	if t < 0x20 || t > 0x7e {
		return fmt.Sprintf("0x%02x", byte(t))
	}
	return string(rune(t))
}

// DeclaredType is the value type a column promises to its readers.
type DeclaredType int

const (
	TypeUnknown DeclaredType = iota
	TypeBool
	TypeString
	TypeDate
	TypeInt16
	TypeInt32
	TypeInt64
	TypeByte
	TypeSingle
	TypeDouble
	TypeDecimal
)

var declaredNames = map[DeclaredType]string{
	TypeUnknown: "unknown",
	TypeBool:    "bool",
	TypeString:  "string",
	TypeDate:    "date",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeByte:    "byte",
	TypeSingle:  "single",
	TypeDouble:  "double",
	TypeDecimal: "decimal",
}

func (d DeclaredType) String() string {
	if s, ok := declaredNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DeclaredType(%d)", int(d))
}

// ParseDeclaredType maps a name produced by DeclaredType.String back to its value.
func ParseDeclaredType(name string) (DeclaredType, error) {
	for d, s := range declaredNames {
		if s == name {
			return d, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown declared type %q", name)
}

// IsNumeric reports whether values of this type are parsed as numbers.
func (d DeclaredType) IsNumeric() bool {
	switch d {
	case TypeInt16, TypeInt32, TypeInt64, TypeByte, TypeSingle, TypeDouble, TypeDecimal:
		return true
	}
	return false
}

// NumericFormatter renders a number as exactly width characters for one field.
type NumericFormatter interface {
	Format(v decimal.Decimal) string
}

// Field describes the byte layout and typing of one column.
type Field struct {
	Name         string
	Tag          TypeTag
	Length       int
	DecimalCount int
	Offset       int
	Declared     DeclaredType
	Formatter    NumericFormatter
}

func (f Field) end() int {
	return f.Offset + f.Length
}
