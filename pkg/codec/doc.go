// Package codec translates fixed-length dBASE attribute records between raw
// bytes and typed column values.
//
// A Schema describes where each column lives in the record buffer and what
// type it holds. A RecordCodec binds a Schema to a codepage, and a Record is
// one row's buffer plus a latched modification flag.
//
// # Record Layout
//
// Records built by SchemaBuilder start with a one-byte deletion marker
// followed by the columns back to back:
//
//	[Deleted(1)][Field 1][Field 2]...[Field n]
//
// Every column is fixed-width text in the configured codepage:
//   - L (logical): one of T/t/Y/y for true, anything else is false
//   - C (character): left-aligned, space padded
//   - D (date): YYYYMMDD
//   - N (numeric): right-aligned decimal text
//   - F (float): writable; decoding reports it as unsupported
//
// # Decoding
//
// Character columns keep trailing spaces and lose only trailing NUL bytes.
// Dates that are not digits decode to Null without an error. Numeric text
// that does not parse as the column's DeclaredType is a *NumericParseError.
// Unknown type codes give *UnsupportedFieldTypeError.
//
// # Encoding
//
// Set methods never resize the buffer or touch bytes outside the field.
// Overlong strings lose their tail. Overlong integers keep their leading
// digits, so 12345 written to a 3-wide column reads back as 123.
//
//	c := codec.NewRecordCodec(schema, codec.WithCharset(charmap.CodePage437))
//	rec := c.NewRecord()
//	if err := rec.SetAll([]codec.Value{codec.String("Elm"), codec.Int(7)}); err != nil {
//	    return err
//	}
//	values, err := rec.Decode()
//
// # Thread Safety
//
// Schema and RecordCodec are immutable and may be shared. A Record belongs
// to one goroutine.
package codec
