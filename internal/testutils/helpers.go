package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pvalue/pkg/value"
)

// NewHeap returns a heap that fails the test if any value or cell is still
// live when the test ends. The check is skipped for tests that already failed.
func NewHeap(t *testing.T, opts ...value.Option) *value.Heap {
	t.Helper()
	h := value.NewHeap(opts...)
	t.Cleanup(func() {
		if t.Failed() {
			return
		}
		stats := h.Stats()
		assert.Zero(t, stats.LiveValues, "live values leaked")
		assert.Zero(t, stats.LiveCells, "live cells leaked")
	})
	return h
}

// WriteFile writes body to name inside a fresh temp dir and returns the path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644), "Failed to write %s", name)
	return path
}
