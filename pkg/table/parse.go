package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
)

// ParseValue converts user-supplied text into the Value a field expects.
// Empty text is Null.
func ParseValue(f codec.Field, text string) (codec.Value, error) {
	if text == "" {
		return codec.Null(), nil
	}

	switch f.Tag {
	case codec.TagLogical:
		switch strings.ToUpper(text) {
		case "T", "Y", "TRUE", "YES", "1":
			return codec.Bool(true), nil
		case "F", "N", "FALSE", "NO", "0":
			return codec.Bool(false), nil
		}
		return codec.Null(), fmt.Errorf("field %s: %q is not a logical value", f.Name, text)
	case codec.TagDate:
		for _, layout := range []string{"2006-01-02", "20060102"} {
			if t, err := time.Parse(layout, text); err == nil {
				return codec.DateValue(codec.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}), nil
			}
		}
		return codec.Null(), fmt.Errorf("field %s: %q is not a date (YYYY-MM-DD)", f.Name, text)
	case codec.TagNumeric, codec.TagFloat:
		return parseNumber(f, text)
	}
	return codec.String(text), nil
}

func parseNumber(f codec.Field, text string) (codec.Value, error) {
	switch f.Declared {
	case codec.TypeByte, codec.TypeInt16, codec.TypeInt32, codec.TypeInt64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return codec.Null(), fmt.Errorf("field %s: %w", f.Name, err)
		}
		return codec.Int(n), nil
	case codec.TypeSingle, codec.TypeDouble:
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return codec.Null(), fmt.Errorf("field %s: %w", f.Name, err)
		}
		return codec.Float(n), nil
	case codec.TypeDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return codec.Null(), fmt.Errorf("field %s: %w", f.Name, err)
		}
		return codec.DecimalValue(d), nil
	}
	return codec.Null(), fmt.Errorf("field %s: declared type %s is not numeric", f.Name, f.Declared)
}
