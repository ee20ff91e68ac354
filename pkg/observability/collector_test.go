package observability_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pvalue/pkg/observability"
	"github.com/aretw0/pvalue/pkg/types"
	"github.com/aretw0/pvalue/pkg/value"
)

func TestHeapCollector(t *testing.T) {
	h := value.NewHeap(value.WithLimits(value.Limits{MaxCells: 100}))
	c := observability.NewHeapCollector(h, prometheus.Labels{"heap": "test"})

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	// An empty map is one node plus three buckets.
	m, err := h.MkDefaultValue(types.Map(types.Int(), types.Int()))
	require.NoError(t, err)

	expected := `
# HELP pvalue_heap_live_cells Accounting cells currently charged.
# TYPE pvalue_heap_live_cells gauge
pvalue_heap_live_cells{heap="test"} 4
# HELP pvalue_heap_live_values Value nodes currently owned by some tree.
# TYPE pvalue_heap_live_values gauge
pvalue_heap_live_values{heap="test"} 1
# HELP pvalue_heap_max_cells Cell budget, 0 when unlimited.
# TYPE pvalue_heap_max_cells gauge
pvalue_heap_max_cells{heap="test"} 100
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"pvalue_heap_live_cells", "pvalue_heap_live_values", "pvalue_heap_max_cells")
	assert.NoError(t, err)

	h.FreeValue(m)

	expected = `
# HELP pvalue_heap_allocations_total Value nodes created.
# TYPE pvalue_heap_allocations_total counter
pvalue_heap_allocations_total{heap="test"} 1
# HELP pvalue_heap_frees_total Value nodes released.
# TYPE pvalue_heap_frees_total counter
pvalue_heap_frees_total{heap="test"} 1
# HELP pvalue_heap_live_cells Accounting cells currently charged.
# TYPE pvalue_heap_live_cells gauge
pvalue_heap_live_cells{heap="test"} 0
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"pvalue_heap_allocations_total", "pvalue_heap_frees_total", "pvalue_heap_live_cells")
	assert.NoError(t, err)
	assert.Equal(t, 7, testutil.CollectAndCount(c))
}

func TestHeapCollector_CountsRefusals(t *testing.T) {
	h := value.NewHeap(value.WithLimits(value.Limits{MaxCells: 2}))
	c := observability.NewHeapCollector(h, nil)

	_, err := h.MkDefaultValue(types.Map(types.Int(), types.Int()))
	require.ErrorIs(t, err, value.ErrOutOfMemory)

	expected := `
# HELP pvalue_heap_out_of_memory_total Operations refused for lack of budget.
# TYPE pvalue_heap_out_of_memory_total counter
pvalue_heap_out_of_memory_total 1
`
	assert.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "pvalue_heap_out_of_memory_total"))
}

func TestHeapCollector_Lint(t *testing.T) {
	c := observability.NewHeapCollector(value.NewHeap(), nil)
	problems, err := testutil.CollectAndLint(c)
	require.NoError(t, err)
	assert.Empty(t, problems)
}
