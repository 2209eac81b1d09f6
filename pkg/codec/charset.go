package codec

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnknownCharset is returned when a codepage name cannot be resolved.
var ErrUnknownCharset = errors.New("unknown charset")

// DefaultCharset is the codepage used when none is configured.
var DefaultCharset encoding.Encoding = charmap.Windows1252

// CharsetByName resolves an IANA or MIME codepage name such as
// "windows-1252", "IBM437" or "ISO-8859-1". Only single-byte codepages are
// accepted: field widths are byte counts and must equal character counts.
func CharsetByName(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCharset, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		enc, err = ianaindex.MIME.Encoding(name)
	}
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharset, name)
	}
	if _, ok := enc.(*charmap.Charmap); !ok {
		return nil, fmt.Errorf("%w: %s is not a single-byte codepage", ErrUnknownCharset, name)
	}
	return enc, nil
}

// transcoder converts between raw field bytes and text for one charset.
type transcoder struct {
	enc encoding.Encoding
}

func (t transcoder) decode(raw []byte) string {
	out, err := t.enc.NewDecoder().Bytes(raw)
	if err != nil {
		// Single-byte decoders do not fail; keep the raw bytes for anything else.
		return string(raw)
	}
	return string(out)
}

// encode converts s to bytes, replacing characters the charset cannot hold.
func (t transcoder) encode(s string) []byte {
	out, err := encoding.ReplaceUnsupported(t.enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}
