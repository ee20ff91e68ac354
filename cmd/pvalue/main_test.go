package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	base := []string{"--no-color", "--log-level", "error", "--config", filepath.Join(t.TempDir(), "none.yaml")}
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDefaultCommand(t *testing.T) {
	out, err := run(t, "default", "(x: int, tags: seq[event])")
	require.NoError(t, err)
	assert.Equal(t, "(x = 0, tags = [])\n", out)

	_, err = run(t, "default", "seq[")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "map[int, (bool, any)]")
	require.NoError(t, err)
	assert.Contains(t, out, "| Default inhabits type | yes |")
	assert.Contains(t, out, "Default value: `{}`")
}

func TestStressCommand_Metrics(t *testing.T) {
	out, err := run(t, "stress", "--keys", "50", "--rounds", "2", "--metrics", "map[int, int]")
	require.NoError(t, err)
	assert.Contains(t, out, "rounds 2, inserts 100, removes 100")
	assert.Contains(t, out, "# TYPE pvalue_heap_live_cells gauge")
	assert.Contains(t, out, "pvalue_heap_live_cells 0")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pvalue version")
}

func TestRootCommand_RejectsUnknownLogLevel(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"default", "int", "--no-color", "--log-level", "verbose",
		"--config", filepath.Join(t.TempDir(), "none.yaml")})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}
