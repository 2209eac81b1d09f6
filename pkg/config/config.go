/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"gopkg.in/yaml.v3"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
)

// Config represents the dbfrec configuration
type Config struct {
	DataDir  string        `yaml:"data_dir"`
	Codepage string        `yaml:"codepage"`
	Callback Callback      `yaml:"callback"`
	Logging  Logging       `yaml:"logging"`
	Tables   []TableConfig `yaml:"tables"`
}

// Callback controls how the row loop reads a row-edit callback's result
type Callback struct {
	// ContinueOn is the callback result that moves on to the next row.
	// Any other result stops the loop.
	ContinueOn bool `yaml:"continue_on"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TableConfig declares one table's columns
type TableConfig struct {
	Name   string        `yaml:"name"`
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig declares one column. Type is the dBASE type letter.
type FieldConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Length   int    `yaml:"length"`
	Decimals int    `yaml:"decimals,omitempty"`
	Declared string `yaml:"declared,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "./data",
		Codepage: "windows-1252",
		Callback: Callback{
			ContinueOn: true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Tables: []TableConfig{
			{
				Name: "roads",
				Fields: []FieldConfig{
					{Name: "NAME", Type: "C", Length: 30},
					{Name: "LANES", Type: "N", Length: 2},
					{Name: "LENGTH_KM", Type: "N", Length: 10, Decimals: 3},
					{Name: "PAVED", Type: "L", Length: 1},
					{Name: "BUILT", Type: "D", Length: 8},
				},
			},
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	config.Tables = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the codepage, logging settings and every table schema
func (c *Config) Validate() error {
	if _, err := c.Charset(); err != nil {
		return err
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if t.Name == "" {
			return errors.New("table with empty name")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate table %q", t.Name)
		}
		seen[t.Name] = true
		if _, err := t.Schema(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}
	return nil
}

// Charset resolves the configured codepage
func (c *Config) Charset() (encoding.Encoding, error) {
	return codec.CharsetByName(c.Codepage)
}

// Table returns the named table configuration
func (c *Config) Table(name string) (*TableConfig, error) {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("table %q is not configured", name)
}

// Schema builds the record schema for the table
func (t *TableConfig) Schema() (*codec.Schema, error) {
	b := codec.NewSchemaBuilder()
	for _, f := range t.Fields {
		if len(f.Type) != 1 {
			return nil, fmt.Errorf("field %s: type must be a single letter, got %q", f.Name, f.Type)
		}
		field := codec.Field{
			Name:         f.Name,
			Tag:          codec.TypeTag(strings.ToUpper(f.Type)[0]),
			Length:       f.Length,
			DecimalCount: f.Decimals,
		}
		if f.Declared != "" {
			d, err := codec.ParseDeclaredType(f.Declared)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			field.Declared = d
		}
		b.AddField(field)
	}
	return b.Build()
}

// NewLogger builds the slog logger described by the logging section
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid logging level %q: %w", s, err)
	}
	return level, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./dbfrec.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "dbfrec")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
