//go:build bench
// +build bench

package codec

import (
	"testing"
)

func benchSchema(b *testing.B) *Schema {
	s, err := NewSchemaBuilder().
		Add("ACTIVE", TagLogical, 1, 0).
		Add("NAME", TagCharacter, 40, 0).
		Add("BUILT", TagDate, 8, 0).
		Add("LANES", TagNumeric, 3, 0).
		Add("LENGTH", TagNumeric, 12, 3).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	return s
}

func BenchmarkRecord_SetAll(b *testing.B) {
	c := NewRecordCodec(benchSchema(b))
	values := []Value{Bool(true), String("Main Street"), DateValue(Date{Year: 2020, Month: 5, Day: 1}), Int(4), Float(1234.567)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := c.NewRecord()
		if err := rec.SetAll(values); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecord_Decode(b *testing.B) {
	c := NewRecordCodec(benchSchema(b))
	rec := c.NewRecord()
	values := []Value{Bool(true), String("Main Street"), DateValue(Date{Year: 2020, Month: 5, Day: 1}), Int(4), Float(1234.567)}
	if err := rec.SetAll(values); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rec.Decode(); err != nil {
			b.Fatal(err)
		}
	}
}
