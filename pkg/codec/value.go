package codec

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ValueKind is the semantic category of a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueString
	ValueInt
	ValueFloat
	ValueDecimal
	ValueDate
	ValueText
)

// Date is a calendar date as stored in a D column. It is not validated
// against the calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYYMMDD.
func (d Date) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// Value is one decoded or to-be-encoded column value. The zero Value is Null.
type Value struct {
	kind ValueKind
	b    bool
	s    string
	i    int64
	f    float64
	d    decimal.Decimal
	date Date
	text fmt.Stringer
}

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: ValueBool, b: b} }
func String(s string) Value { return Value{kind: ValueString, s: s} }
func Int(i int64) Value { return Value{kind: ValueInt, i: i} }
func Float(f float64) Value { return Value{kind: ValueFloat, f: f} }
func DecimalValue(d decimal.Decimal) Value { return Value{kind: ValueDecimal, d: d} }
func DateValue(d Date) Value { return Value{kind: ValueDate, date: d} }

// Text wraps any other value that is written by its string form.
func Text(s fmt.Stringer) Value {
	if s == nil {
		return Null()
	}
	return Value{kind: ValueText, text: s}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool { return v.kind == ValueNull }

// AsBool returns the boolean and whether v holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == ValueBool }

// AsString returns the string and whether v holds one.
func (v Value) AsString() (string, bool) { return v.s, v.kind == ValueString }

// AsInt returns the integer and whether v holds one.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == ValueInt }

// AsFloat returns the float and whether v holds one.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == ValueFloat }

// AsDecimal returns the decimal and whether v holds one.
func (v Value) AsDecimal() (decimal.Decimal, bool) { return v.d, v.kind == ValueDecimal }

// AsDate returns the date and whether v holds one.
func (v Value) AsDate() (Date, bool) { return v.date, v.kind == ValueDate }

// String renders v for display. Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueString:
		return v.s
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueDecimal:
		return v.d.String()
	case ValueDate:
		return v.date.String()
	case ValueText:
		return v.text.String()
	}
	return ""
}
