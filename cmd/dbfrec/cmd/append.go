/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
	"github.com/spaddlewit/DotSpatial/pkg/table"
)

func newAppendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append <table> <value>...",
		Short: "Append a row",
		Long: `Append a row with one value per column, in column order. An empty
argument leaves the column blank. Dates are YYYY-MM-DD.

Example:
  dbfrec append roads "Main Street" 4 12.5 T 1998-03-09`,
		Args: cobra.MinimumNArgs(1),
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
			texts := args[1:]
			values := make([]codec.Value, len(texts))
			for i, text := range texts {
				if i >= schema.Len() {
					break
				}
				v, err := table.ParseValue(schema.Field(i), text)
				if err != nil {
					return err
				}
				values[i] = v
			}

			row, err := h.Append(cmd.Context(), id, values)
			if err != nil {
				return err
			}
			cmd.Printf("Appended row %d\n", row)
			return nil
		}),
	}
}
