/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <table>",
		Short: "Create a configured table in the store",
		Long: `Create an empty table. The table's columns must be declared in the
configuration file.

Example:
  dbfrec create roads`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if _, err := s.host(args[0]); err != nil {
				return err
			}

			id, err := s.store.CreateTable(args[0])
			if err != nil {
				return err
			}
			s.logger.Info("created table", "table", args[0], "id", id.String())
			cmd.Printf("Created table '%s' (%s)\n", args[0], id)
			return nil
		}),
	}
}
