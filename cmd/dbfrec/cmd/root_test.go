package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaddlewit/DotSpatial/pkg/config"
)

type cli struct {
	configPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	c := &cli{configPath: filepath.Join(dir, "dbfrec.yaml")}

	out, err := c.run("init", "--data-dir", filepath.Join(dir, "data"))
	require.NoError(t, err)
	require.Contains(t, out, "Wrote config")
	return c
}

func (c *cli) run(args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", c.configPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInitCommand(t *testing.T) {
	c := newCLI(t)

	cfg, err := config.LoadConfig(c.configPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cfg.DataDir, "data"))

	out, err := c.run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	out, err = c.run("init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config")
}

func TestRowCommands(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("create", "roads")
	require.NoError(t, err)
	assert.Contains(t, out, "Created table 'roads'")

	_, err = c.run("create", "roads")
	assert.Error(t, err)

	_, err = c.run("create", "rivers")
	assert.Error(t, err)

	out, err = c.run("append", "roads", "Main Street", "4", "12.5", "T", "1998-03-09")
	require.NoError(t, err)
	assert.Contains(t, out, "Appended row 0")

	out, err = c.run("append", "roads", "Elm", "", "", "F", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Appended row 1")

	_, err = c.run("append", "roads", "Oak")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column count mismatch")

	_, err = c.run("append", "roads", "Oak", "many", "", "", "")
	assert.Error(t, err)

	out, err = c.run("dump", "roads")
	require.NoError(t, err)
	assert.Equal(t,
		`0 NAME="Main Street" LANES="4" LENGTH_KM="12.5" PAVED="true" BUILT="19980309"`+"\n"+
			`1 NAME="Elm" LANES="" LENGTH_KM="" PAVED="false" BUILT=""`+"\n",
		out)

	out, err = c.run("fill", "roads", "LENGTH_KM", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Filled 0 of 2 rows")

	out, err = c.run("fill", "roads", "LANES", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Filled 1 of 2 rows")

	out, err = c.run("set", "roads", "0", "LANES", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated row 0")

	_, err = c.run("set", "roads", "0", "WIDTH", "6")
	assert.Error(t, err)

	_, err = c.run("set", "roads", "1", "--delete")
	require.NoError(t, err)

	out, err = c.run("dump", "roads", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, `0 NAME="Main Street" LANES="6"`)
	assert.Contains(t, out, `1 * NAME="Elm" LANES="2"`)
	assert.Contains(t, out, "dbfrec_rows_visited_total")
}
