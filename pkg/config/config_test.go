package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, "windows-1252", config.Codepage)
	assert.True(t, config.Callback.ContinueOn)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
	require.Len(t, config.Tables, 1)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		expected := &Config{
			DataDir:  "/custom/data",
			Codepage: "IBM437",
			Callback: Callback{ContinueOn: false},
			Logging:  Logging{Level: "debug", Format: "json"},
			Tables: []TableConfig{
				{Name: "wells", Fields: []FieldConfig{
					{Name: "ID", Type: "N", Length: 6},
					{Name: "DEPTH", Type: "N", Length: 8, Decimals: 2, Declared: "decimal"},
				}},
			},
		}

		require.NoError(t, SaveConfig(expected, configPath))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expected, loaded)

		enc, err := loaded.Charset()
		require.NoError(t, err)
		assert.Equal(t, charmap.CodePage437, enc)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("data_dir: /srv/rows\n"), 0600))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "/srv/rows", loaded.DataDir)
		assert.Equal(t, "windows-1252", loaded.Codepage)
		assert.True(t, loaded.Callback.ContinueOn)
		assert.Empty(t, loaded.Tables)
	})

	t.Run("non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/path/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0600))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid codepage", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("codepage: klingon\n"), 0600))

		_, err := LoadConfig(configPath)
		assert.ErrorIs(t, err, codec.ErrUnknownCharset)
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir", "config.yaml")

	require.NoError(t, SaveConfig(DefaultConfig(), configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	var parsed Config
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, "windows-1252", parsed.Codepage)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"unnamed table", func(c *Config) { c.Tables[0].Name = "" }},
		{"duplicate table", func(c *Config) { c.Tables = append(c.Tables, c.Tables[0]) }},
		{"zero length field", func(c *Config) { c.Tables[0].Fields[0].Length = 0 }},
		{"long type", func(c *Config) { c.Tables[0].Fields[0].Type = "CH" }},
		{"unknown declared", func(c *Config) { c.Tables[0].Fields[1].Declared = "money" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestTableSchema(t *testing.T) {
	c := DefaultConfig()
	table, err := c.Table("roads")
	require.NoError(t, err)

	schema, err := table.Schema()
	require.NoError(t, err)
	assert.Equal(t, 5, schema.Len())
	assert.Equal(t, 1+30+2+10+1+8, schema.RecordLength())
	assert.Equal(t, codec.TagNumeric, schema.Field(1).Tag)
	assert.Equal(t, codec.TypeInt16, schema.Field(1).Declared)
	assert.Equal(t, codec.TypeDouble, schema.Field(2).Declared)

	lower := TableConfig{Name: "x", Fields: []FieldConfig{{Name: "A", Type: "c", Length: 3}}}
	schema, err = lower.Schema()
	require.NoError(t, err)
	assert.Equal(t, codec.TagCharacter, schema.Field(0).Tag)

	_, err = c.Table("rivers")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultConfig()
	c.Logging = Logging{Level: "warn", Format: "json"}

	logger := c.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "table", "roads")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"table":"roads"`)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "dbfrec")
}

func TestConfigExists(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	assert.False(t, ConfigExists(configPath))
	require.NoError(t, SaveConfig(DefaultConfig(), configPath))
	assert.True(t, ConfigExists(configPath))
}
