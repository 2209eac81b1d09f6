/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <table>",
		Short: "Print every row of a table",
		Long: `Decode and print every row of a table, one line per row.

Example:
  dbfrec dump roads`,
		Args: cobra.ExactArgs(1),
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
			var decodeErr error
			_, err = h.Each(cmd.Context(), id, func(row uint64, rec *codec.Record) bool {
				values, err := rec.Decode()
				if err != nil {
					decodeErr = fmt.Errorf("row %d: %w", row, err)
					return !s.proceed()
				}
				cmd.Println(formatRow(row, rec.Deleted(), schema, values))
				return s.proceed()
			})
			if err != nil {
				return err
			}
			return decodeErr
		}),
	}
}

func formatRow(row uint64, deleted bool, schema *codec.Schema, values []codec.Value) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", row)
	if deleted {
		b.WriteString(" *")
	}
	for i, v := range values {
		fmt.Fprintf(&b, " %s=%q", schema.Field(i).Name, strings.TrimRight(v.String(), " "))
	}
	return b.String()
}
