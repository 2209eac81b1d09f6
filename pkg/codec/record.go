package codec

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"github.com/spaddlewit/DotSpatial/pkg/numfmt"
)

const (
	padByte     = ' '
	nullPadding = "\x00"
	deletedFlag = '*'
)

// RecordCodec binds a schema to a charset. It holds no per-row state and is
// safe for concurrent use; each row gets its own Record.
type RecordCodec struct {
	schema *Schema
	text   transcoder
}

// Option configures a RecordCodec.
type Option func(*RecordCodec)

// WithCharset sets the codepage used between raw bytes and text.
func WithCharset(enc encoding.Encoding) Option {
	return func(c *RecordCodec) {
		if enc != nil {
			c.text = transcoder{enc: enc}
		}
	}
}

// NewRecordCodec creates a codec for schema using DefaultCharset unless an
// option says otherwise.
func NewRecordCodec(schema *Schema, opts ...Option) *RecordCodec {
	c := &RecordCodec{
		schema: schema,
		text:   transcoder{enc: DefaultCharset},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schema returns the schema the codec was built with.
func (c *RecordCodec) Schema() *Schema {
	return c.schema
}

// NewRecord allocates a blank, space-filled buffer for one row.
func (c *RecordCodec) NewRecord() *Record {
	return c.Wrap(bytes.Repeat([]byte{padByte}, c.schema.RecordLength()))
}

// Wrap takes ownership of buf as one row's record buffer. buf must be at
// least Schema().RecordLength() bytes long; it is modified in place.
func (c *RecordCodec) Wrap(buf []byte) *Record {
	return &Record{codec: c, buf: buf}
}

// Record is the buffer of one row together with its modification flag.
// A Record must not be used from more than one goroutine.
type Record struct {
	codec    *RecordCodec
	buf      []byte
	modified bool
}

// Bytes returns the underlying buffer.
func (r *Record) Bytes() []byte {
	return r.buf
}

// Modified reports whether any Set call has written to the buffer.
func (r *Record) Modified() bool {
	return r.modified
}

// Deleted reports whether the row carries the dBASE deletion marker.
func (r *Record) Deleted() bool {
	return len(r.buf) > 0 && r.buf[0] == deletedFlag
}

// MarkDeleted sets or clears the deletion marker.
func (r *Record) MarkDeleted(deleted bool) {
	if len(r.buf) == 0 {
		return
	}
	if deleted {
		r.buf[0] = deletedFlag
	} else {
		r.buf[0] = padByte
	}
	r.modified = true
}

// DecodeField reads one column.
func (r *Record) DecodeField(f Field) (Value, error) {
	text := r.codec.text.decode(r.buf[f.Offset:f.end()])

	switch f.Tag.Kind() {
	case KindLogical:
		return decodeLogical(text), nil
	case KindCharacter:
		return String(strings.TrimRight(text, nullPadding)), nil
	case KindDate:
		return decodeDate(text), nil
	case KindNumeric:
		return decodeNumeric(f, text)
	case KindUnsupported:
	}
	return Null(), &UnsupportedFieldTypeError{Field: f.Name, Tag: f.Tag}
}

// Decode reads every column in schema order and stops at the first error.
func (r *Record) Decode() ([]Value, error) {
	schema := r.codec.schema
	values := make([]Value, schema.Len())
	for i := range values {
		v, err := r.DecodeField(schema.Field(i))
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func decodeLogical(text string) Value {
	if text == "" {
		return Bool(false)
	}
	switch text[0] {
	case 'T', 't', 'Y', 'y':
		return Bool(true)
	}
	return Bool(false)
}

// decodeDate yields Null rather than an error for anything that is not
// YYYYMMDD digits.
func decodeDate(text string) Value {
	if len(text) < 8 {
		return Null()
	}
	year, err := strconv.ParseUint(text[0:4], 10, 32)
	if err != nil {
		return Null()
	}
	month, err := strconv.ParseUint(text[4:6], 10, 32)
	if err != nil {
		return Null()
	}
	day, err := strconv.ParseUint(text[6:8], 10, 32)
	if err != nil {
		return Null()
	}
	return DateValue(Date{Year: int(year), Month: int(month), Day: int(day)})
}

func decodeNumeric(f Field, text string) (Value, error) {
	if !f.Declared.IsNumeric() {
		return Null(), nil
	}
	s := strings.TrimSpace(strings.TrimRight(text, nullPadding))
	if s == "" {
		return Null(), nil
	}

	var (
		v   Value
		err error
	)
	switch f.Declared {
	case TypeByte:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 8)
		v = Int(int64(n))
	case TypeInt16, TypeInt32, TypeInt64:
		var n int64
		n, err = strconv.ParseInt(s, 10, intBits(f.Declared))
		v = Int(n)
	case TypeSingle:
		if err = plainDecimal(s); err != nil {
			break
		}
		var n float64
		n, err = strconv.ParseFloat(s, 32)
		v = Float(n)
	case TypeDouble:
		if err = plainDecimal(s); err != nil {
			break
		}
		var n float64
		n, err = strconv.ParseFloat(s, 64)
		v = Float(n)
	case TypeDecimal:
		if err = plainDecimal(s); err != nil {
			break
		}
		var d decimal.Decimal
		d, err = decimal.NewFromString(s)
		v = DecimalValue(d)
	}
	if err != nil {
		return Null(), &NumericParseError{Field: f.Name, Declared: f.Declared, Text: s, Err: err}
	}
	return v, nil
}

// plainDecimal rejects the float spellings strconv accepts beyond signed
// decimal digits with an optional exponent: NaN, Inf, hex mantissas and
// underscore separators.
func plainDecimal(s string) error {
	if strings.Trim(s, "0123456789+-.eE") != "" {
		return &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}
	return nil
}

func intBits(d DeclaredType) int {
	switch d {
	case TypeInt16:
		return 16
	case TypeInt32:
		return 32
	}
	return 64
}

// SetString writes s left-aligned and space padded. Characters beyond the
// field width are dropped.
func (r *Record) SetString(f Field, s string) {
	if n := utf8.RuneCountInString(s); n > f.Length {
		s = firstRunes(s, f.Length)
	} else if n < f.Length {
		s += strings.Repeat(" ", f.Length-n)
	}
	r.writeText(f, s)
}

// SetBool writes T or F into the first byte of the field only.
func (r *Record) SetBool(f Field, b bool) {
	c := byte('F')
	if b {
		c = 'T'
	}
	r.buf[f.Offset] = c
	r.modified = true
}

// SetNull blanks the field.
func (r *Record) SetNull(f Field) {
	field := r.buf[f.Offset:f.end()]
	for i := range field {
		field[i] = padByte
	}
	r.modified = true
}

// SetDate writes d as YYYYMMDD.
func (r *Record) SetDate(f Field, d Date) {
	r.SetString(f, d.String())
}

// SetInt writes i right-aligned. When the digits do not fit, the leading
// field-width characters are kept, so the high-order digits survive and the
// stored magnitude is wrong: 12345 in a 3-wide field reads back as 123.
func (r *Record) SetInt(f Field, i int64) {
	s := strconv.FormatInt(i, 10)
	if n := len(s); n < f.Length {
		s = strings.Repeat(" ", f.Length-n) + s
	}
	r.writeText(f, s[:f.Length])
}

// SetFloat writes v. TagFloat columns take the shortest round-trip text,
// left-aligned; other columns go through the field's NumericFormatter.
// NaN and infinities have no column representation and blank the field.
func (r *Record) SetFloat(f Field, v float64) {
	if f.Tag == TagFloat {
		r.SetString(f, strconv.FormatFloat(v, 'g', -1, 64))
		return
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		r.SetNull(f)
		return
	}
	r.writeText(f, formatterFor(f).Format(decimal.NewFromFloat(v)))
}

// SetDecimal writes d through the field's NumericFormatter.
func (r *Record) SetDecimal(f Field, d decimal.Decimal) {
	r.writeText(f, formatterFor(f).Format(d))
}

// Set dispatches v to the Set method for its kind.
func (r *Record) Set(f Field, v Value) {
	switch v.Kind() {
	case ValueNull:
		r.SetNull(f)
	case ValueBool:
		r.SetBool(f, v.b)
	case ValueString:
		r.SetString(f, v.s)
	case ValueInt:
		r.SetInt(f, v.i)
	case ValueFloat:
		r.SetFloat(f, v.f)
	case ValueDecimal:
		r.SetDecimal(f, v.d)
	case ValueDate:
		r.SetDate(f, v.date)
	case ValueText:
		r.SetString(f, v.text.String())
	}
}

// SetAll writes one value per field in schema order.
func (r *Record) SetAll(values []Value) error {
	schema := r.codec.schema
	if len(values) != schema.Len() {
		return &ColumnCountMismatchError{Expected: schema.Len(), Actual: len(values)}
	}
	for i, v := range values {
		r.Set(schema.Field(i), v)
	}
	return nil
}

// writeText encodes text and stores exactly f.Length bytes at f.Offset,
// padding with spaces or cutting when the encoded form has another width.
func (r *Record) writeText(f Field, text string) {
	raw := r.codec.text.encode(text)
	field := r.buf[f.Offset:f.end()]
	n := copy(field, raw)
	for ; n < len(field); n++ {
		field[n] = padByte
	}
	r.modified = true
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func formatterFor(f Field) NumericFormatter {
	if f.Formatter != nil {
		return f.Formatter
	}
	return numfmt.ForField(f.Length, f.DecimalCount)
}
