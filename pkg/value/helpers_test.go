package value_test

import (
	"testing"

	"github.com/aretw0/pvalue/internal/testutils"
	"github.com/aretw0/pvalue/pkg/types"
	"github.com/aretw0/pvalue/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeap(t *testing.T, opts ...value.Option) *value.Heap {
	t.Helper()
	return testutils.NewHeap(t, opts...)
}

func mkInt(t *testing.T, h *value.Heap, n int32) *value.Value {
	t.Helper()
	v, err := h.MkIntValue(n)
	require.NoError(t, err)
	return v
}

func mkBool(t *testing.T, h *value.Heap, b bool) *value.Value {
	t.Helper()
	v, err := h.MkBoolValue(b)
	require.NoError(t, err)
	return v
}

func mkNull(t *testing.T, h *value.Heap) *value.Value {
	t.Helper()
	v, err := h.MkNullValue()
	require.NoError(t, err)
	return v
}

func mkDefault(t *testing.T, h *value.Heap, typ string) *value.Value {
	t.Helper()
	v, err := h.MkDefaultValue(types.MustParse(typ))
	require.NoError(t, err)
	return v
}

// intSeq builds a seq[int] holding ns in order.
func intSeq(t *testing.T, h *value.Heap, ns ...int32) *value.Value {
	t.Helper()
	seq := mkDefault(t, h, "seq[int]")
	for i, n := range ns {
		v := mkInt(t, h, n)
		require.NoError(t, h.SeqInsert(seq, i, v))
		h.FreeValue(v)
	}
	return seq
}

// put maps k to v in a map with int keys and int values.
func put(t *testing.T, h *value.Heap, m *value.Value, k, v int32) {
	t.Helper()
	kv, vv := mkInt(t, h, k), mkInt(t, h, v)
	require.NoError(t, h.MapUpdate(m, kv, vv))
	h.FreeValue(kv)
	h.FreeValue(vv)
}

// intMap builds a map[int, int] from alternating keys and values.
func intMap(t *testing.T, h *value.Heap, pairs ...int32) *value.Value {
	t.Helper()
	m := mkDefault(t, h, "map[int, int]")
	for i := 0; i+1 < len(pairs); i += 2 {
		put(t, h, m, pairs[i], pairs[i+1])
	}
	return m
}

// ints reads a seq[int] back into a Go slice.
func ints(t *testing.T, h *value.Heap, seq *value.Value) []int32 {
	t.Helper()
	out := make([]int32, 0, value.SeqSizeOf(seq))
	for i := 0; i < value.SeqSizeOf(seq); i++ {
		e, err := h.SeqGet(seq, i)
		require.NoError(t, err)
		out = append(out, value.PrimGetInt(e))
		h.FreeValue(e)
	}
	return out
}

func mapKeys(t *testing.T, h *value.Heap, m *value.Value) []int32 {
	t.Helper()
	keys, err := h.MapGetKeys(m)
	require.NoError(t, err)
	defer h.FreeValue(keys)
	return ints(t, h, keys)
}

// assertContract checks that fn panics with a *value.ContractError for op.
func assertContract(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "%s: expected contract violation", op)
		cerr, ok := r.(*value.ContractError)
		require.True(t, ok, "%s: panic value %T is not *ContractError", op, r)
		assert.Equal(t, op, cerr.Op)
	}()
	fn()
}
