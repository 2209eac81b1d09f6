package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/spaddlewit/DotSpatial/pkg/numfmt"
)

func TestSchemaBuilder_Layout(t *testing.T) {
	s := roads(t)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 33, s.RecordLength())

	offsets := []int{1, 2, 12, 20, 23}
	for i, f := range s.Fields() {
		assert.Equal(t, offsets[i], f.Offset, f.Name)
	}

	assert.Equal(t, 3, s.Index("LANES"))
	assert.Equal(t, -1, s.Index("MISSING"))
	assert.Equal(t, numfmt.Fixed{Width: 10, Decimals: 2}, s.Field(4).Formatter)
	assert.Nil(t, s.Field(1).Formatter)
}

func TestSchemaBuilder_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		build func(b *SchemaBuilder) *SchemaBuilder
	}{
		{"zero length", func(b *SchemaBuilder) *SchemaBuilder { return b.Add("A", TagCharacter, 0, 0) }},
		{"no name", func(b *SchemaBuilder) *SchemaBuilder { return b.Add("", TagCharacter, 1, 0) }},
		{"long name", func(b *SchemaBuilder) *SchemaBuilder { return b.Add("ELEVENCHARS", TagCharacter, 1, 0) }},
		{"too many decimals", func(b *SchemaBuilder) *SchemaBuilder { return b.Add("A", TagNumeric, 3, 3) }},
		{"duplicate", func(b *SchemaBuilder) *SchemaBuilder {
			return b.Add("A", TagCharacter, 1, 0).Add("A", TagNumeric, 2, 0)
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build(NewSchemaBuilder()).Add("OK", TagLogical, 1, 0).Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidField))
		})
	}
}

func TestSchemaBuilder_ExplicitDeclaredType(t *testing.T) {
	s, err := NewSchemaBuilder().
		AddField(Field{Name: "CODE", Tag: TagNumeric, Length: 3, Declared: TypeByte}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, TypeByte, s.Field(0).Declared)
}

func TestInferDeclaredType(t *testing.T) {
	testCases := []struct {
		tag      TypeTag
		length   int
		decimals int
		want     DeclaredType
	}{
		{TagLogical, 1, 0, TypeBool},
		{TagCharacter, 40, 0, TypeString},
		{TagDate, 8, 0, TypeDate},
		{TagFloat, 19, 11, TypeDouble},
		{TagNumeric, 4, 0, TypeInt16},
		{TagNumeric, 9, 0, TypeInt32},
		{TagNumeric, 18, 0, TypeInt64},
		{TagNumeric, 19, 0, TypeDecimal},
		{TagNumeric, 12, 3, TypeDouble},
		{TagNumeric, 19, 3, TypeDecimal},
		{TypeTag('M'), 10, 0, TypeUnknown},
	}

	for _, tc := range testCases {
		got := InferDeclaredType(tc.tag, tc.length, tc.decimals)
		assert.Equal(t, tc.want, got, "%s(%d,%d)", tc.tag, tc.length, tc.decimals)
	}
}

func TestDeclaredType_Names(t *testing.T) {
	for d := TypeUnknown; d <= TypeDecimal; d++ {
		parsed, err := ParseDeclaredType(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	_, err := ParseDeclaredType("money")
	assert.Error(t, err)
}

func TestCharsetByName(t *testing.T) {
	enc, err := CharsetByName("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCharset, enc)

	enc, err = CharsetByName("windows-1252")
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1252, enc)

	enc, err = CharsetByName("IBM437")
	require.NoError(t, err)
	assert.Equal(t, charmap.CodePage437, enc)

	for _, multiByte := range []string{"UTF-8", "Shift_JIS", "UTF-16"} {
		_, err = CharsetByName(multiByte)
		assert.True(t, errors.Is(err, ErrUnknownCharset), multiByte)
	}

	_, err = CharsetByName("not-a-codepage")
	assert.True(t, errors.Is(err, ErrUnknownCharset))
}
