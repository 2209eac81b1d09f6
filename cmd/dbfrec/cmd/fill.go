/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
	"github.com/spaddlewit/DotSpatial/pkg/table"
)

func newFillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <table> <field> <value>",
		Short: "Set a column on every row where it is blank",
		Long: `Walk every row and write value into field wherever the field is
currently blank. Only rows whose bytes change are written back.

Example:
  dbfrec fill roads LANES 2`,
		Args: cobra.ExactArgs(3),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			h, err := s.host(args[0])
			if err != nil {
				return err
			}
			id, err := s.store.LookupTable(args[0])
			if err != nil {
				return err
			}

			schema := h.Codec().Schema()
			i := schema.Index(args[1])
			if i < 0 {
				return fmt.Errorf("table %s has no field %s", args[0], args[1])
			}
			f := schema.Field(i)
			v, err := table.ParseValue(f, args[2])
			if err != nil {
				return err
			}

			var decodeErr error
			stats, err := h.Each(cmd.Context(), id, func(row uint64, rec *codec.Record) bool {
				current, err := rec.DecodeField(f)
				if err != nil {
					decodeErr = fmt.Errorf("row %d: %w", row, err)
					return !s.proceed()
				}
				if (current.IsNull() || isBlank(current)) && changes(h.Codec(), rec, f, v) {
					rec.Set(f, v)
				}
				return s.proceed()
			})
			if err != nil {
				return err
			}
			if decodeErr != nil {
				return decodeErr
			}
			cmd.Printf("Filled %d of %d rows\n", stats.Persisted, stats.Visited)
			return nil
		}),
	}
}

// changes reports whether writing v into f would alter the row's bytes.
func changes(c *codec.RecordCodec, rec *codec.Record, f codec.Field, v codec.Value) bool {
	scratch := c.Wrap(append([]byte(nil), rec.Bytes()...))
	scratch.Set(f, v)
	return !bytes.Equal(scratch.Bytes(), rec.Bytes())
}

func isBlank(v codec.Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}
	for _, r := range s {
		if r != ' ' {
			return false
		}
	}
	return true
}
