/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spaddlewit/DotSpatial/pkg/config"
)

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a configuration file with the default codepage, logging
settings and an example "roads" table.

Examples:
  dbfrec init
  dbfrec init --config ./dbfrec.yaml --data-dir ./rows`,
		Annotations: map[string]string{"session": "none"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			force, _ := cmd.Flags().GetBool("force")

			if config.ConfigExists(configPath) && !force {
				cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
				return nil
			}

			cfg := config.DefaultConfig()
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if err := config.SaveConfig(cfg, configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			cmd.Printf("Wrote config to %s\n", configPath)
			cmd.Printf("Data directory: %s\n", cfg.DataDir)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return initCmd
}
