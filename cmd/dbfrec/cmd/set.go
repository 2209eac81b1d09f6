/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
	"github.com/spaddlewit/DotSpatial/pkg/table"
)

func newSetCmd() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set <table> <row> <field> <value>",
		Short: "Set one column of one row",
		Long: `Set one column of one row. An empty value blanks the column.

Examples:
  dbfrec set roads 0 LANES 6
  dbfrec set roads 3 NAME ""
  dbfrec set roads 2 --delete`,
		Args: cobra.RangeArgs(2, 4),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			h, err := s.host(args[0])
			if err != nil {
				return err
			}
			id, err := s.store.LookupTable(args[0])
			if err != nil {
				return err
			}
			row, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid row number %q: %w", args[1], err)
			}
			del, _ := cmd.Flags().GetBool("delete")
			if !del && len(args) != 4 {
				return fmt.Errorf("expected <table> <row> <field> <value>")
			}

			written, err := h.Update(cmd.Context(), id, row, func(rec *codec.Record) error {
				if del {
					rec.MarkDeleted(true)
					return nil
				}
				schema := h.Codec().Schema()
				i := schema.Index(args[2])
				if i < 0 {
					return fmt.Errorf("table %s has no field %s", args[0], args[2])
				}
				v, err := table.ParseValue(schema.Field(i), args[3])
				if err != nil {
					return err
				}
				rec.Set(schema.Field(i), v)
				return nil
			})
			if err != nil {
				return err
			}
			if written {
				cmd.Printf("Updated row %d\n", row)
			}
			return nil
		}),
	}
	setCmd.Flags().Bool("delete", false, "Mark the row deleted instead of setting a field")
	return setCmd
}
