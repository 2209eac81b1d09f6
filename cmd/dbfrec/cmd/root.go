/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
	"github.com/spaddlewit/DotSpatial/pkg/config"
	"github.com/spaddlewit/DotSpatial/pkg/storage"
	"github.com/spaddlewit/DotSpatial/pkg/table"
)

type sessionKey struct{}

// session is what PersistentPreRunE prepares for every data command
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *storage.RowStore
	registry *prometheus.Registry
	metrics  *table.Metrics
}

// NewRootCmd builds the dbfrec command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbfrec",
		Short: "dbfrec - dBASE attribute record tool",
		Long: `dbfrec stores dBASE attribute records in an embedded store and
reads and edits them column by column using the table schemas declared in
its configuration file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["session"] == "none" {
				return nil
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the store (overrides config)")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print row counters after the command")

	rootCmd.AddCommand(
		newInitCmd(),
		newCreateCmd(),
		newAppendCmd(),
		newDumpCmd(),
		newSetCmd(),
		newFillCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func openSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	store, err := storage.NewRowStore(cfg.DataDir, storage.Options{})
	if err != nil {
		return nil, err
	}
	logger.Debug("opened row store", "data_dir", cfg.DataDir, "codepage", cfg.Codepage)

	registry := prometheus.NewRegistry()
	return &session{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		registry: registry,
		metrics:  table.NewMetrics(registry),
	}, nil
}

func sessionFrom(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok {
		return nil, errors.New("store not found in context")
	}
	return s, nil
}

// withSession hands run the prepared session and closes the store when run
// returns, whether or not it failed
func withSession(run func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if show, _ := cmd.Flags().GetBool("metrics"); show && err == nil {
				err = printMetrics(cmd, s.registry)
			}
			if cerr := s.store.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close store: %w", cerr)
			}
		}()
		return run(cmd, args, s)
	}
}

// host builds the row host for a configured table
func (s *session) host(name string) (*table.Host, error) {
	tc, err := s.cfg.Table(name)
	if err != nil {
		return nil, err
	}
	schema, err := tc.Schema()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}
	charset, err := s.cfg.Charset()
	if err != nil {
		return nil, err
	}

	rc := codec.NewRecordCodec(schema, codec.WithCharset(charset))
	return table.NewHost(rc, s.store,
		table.WithLogger(s.logger.With("table", name)),
		table.WithMetrics(s.metrics),
		table.WithConvention(table.ConventionFor(s.cfg.Callback.ContinueOn)),
	), nil
}

// proceed is the callback result that keeps the row loop going
func (s *session) proceed() bool {
	return s.cfg.Callback.ContinueOn
}

func printMetrics(cmd *cobra.Command, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		cmd.Println(line)
	}
	return nil
}
