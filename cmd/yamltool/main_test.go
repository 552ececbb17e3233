package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDefaults(t *testing.T) {
	t.Setenv("YAMLTOOL_INDENT", "4")
	t.Setenv("YAMLTOOL_SCHEMA", "yaml-1.1")
	root = rootFlags{}
	root.Indent = 2
	root.Width = 80
	envDefaults()
	assert.Equal(t, 4, root.Indent)
	assert.Equal(t, "yaml-1.1", root.Schema)
	assert.Equal(t, 80, root.Width)
}

func TestOutOpts(t *testing.T) {
	root = rootFlags{Schema: "core", Indent: 2, Width: 80}
	opts := outOpts()
	require.NotEmpty(t, opts)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "stdin", displayName(""))
	assert.Equal(t, "stdin", displayName("-"))
	assert.Equal(t, "x.yaml", displayName("x.yaml"))
}
