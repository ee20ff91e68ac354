package config_test

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pvalue/internal/config"
	"github.com/aretw0/pvalue/internal/testutils"
	"github.com/aretw0/pvalue/pkg/types"
	"github.com/aretw0/pvalue/pkg/value"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := testutils.WriteFile(t, "pvalue.yaml", `
heap:
  max_cells: 5000
map:
  load_factor: 0.75
log:
  level: debug
types:
  Path: "seq[Point]"
  Point: "(x: int, y: int)"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), cfg.Heap.MaxCells)
	assert.Equal(t, value.DefaultSeqMinCapacity, cfg.Heap.SeqMinCapacity, "unset keys keep defaults")
	assert.Equal(t, 0.75, cfg.Map.LoadFactor)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)

	env, err := cfg.TypeEnv()
	require.NoError(t, err)
	assert.True(t, types.Equal(types.MustParse("seq[(x: int, y: int)]"), env["Path"]))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "heap: [1, 2"},
		{"unknown key", "heap:\n  max_celss: 10\n"},
		{"wrong type", "heap:\n  max_cells: lots\n"},
		{"negative budget", "heap:\n  max_cells: -1\n"},
		{"zero load factor", "map:\n  load_factor: 0\n"},
		{"bad alias", "types:\n  Broken: \"seq[\"\n"},
		{"unknown log level", "log:\n  level: verbose\n"},
		{"alias cycle", "types:\n  A: \"seq[B]\"\n  B: \"seq[A]\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(testutils.WriteFile(t, "pvalue.yaml", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestHeapOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Heap.MaxCells = 4
	cfg.Heap.SeqMinCapacity = 1

	h := value.NewHeap(cfg.HeapOptions()...)
	assert.Equal(t, int64(4), h.Limits().MaxCells)

	seq, err := h.MkDefaultValue(types.Seq(types.Int()))
	require.NoError(t, err)
	n, err := h.MkIntValue(1)
	require.NoError(t, err)

	// Node, int, clone and a single slot: exactly the budget.
	require.NoError(t, h.SeqInsert(seq, 0, n))
	assert.Equal(t, 1, value.SeqCapacity(seq))

	_, err = h.MkIntValue(2)
	assert.ErrorIs(t, err, value.ErrOutOfMemory)

	h.FreeValue(n)
	h.FreeValue(seq)
}

func TestLoad_UnknownLogLevel(t *testing.T) {
	path := testutils.WriteFile(t, "pvalue.yaml", "log:\n  level: verbose\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "verbose"`)
}
