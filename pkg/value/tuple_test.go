package value_test

import (
	"testing"

	"github.com/aretw0/pvalue/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTupleSet_AnyBool(t *testing.T) {
	h := newHeap(t)

	tuple := mkDefault(t, h, "(any, bool)")
	defer h.FreeValue(tuple)

	one := mkInt(t, h, 1)
	defer h.FreeValue(one)
	yes := mkBool(t, h, true)
	defer h.FreeValue(yes)

	require.NoError(t, h.TupleSet(tuple, 0, one))
	require.NoError(t, h.TupleSet(tuple, 1, yes))
	assert.Equal(t, "(1, true)", tuple.String())

	no := mkBool(t, h, false)
	defer h.FreeValue(no)
	require.NoError(t, h.TupleSet(tuple, 1, no))
	assert.Equal(t, "(1, false)", tuple.String())

	// The second slot is declared bool: storing an int is rejected.
	assertContract(t, "TupleSet", func() { h.TupleSet(tuple, 1, one) })
	assert.Equal(t, "(1, false)", tuple.String())

	// The declared type is unchanged by mutation.
	assert.Equal(t, "(any, bool)", tuple.Type().Name())
}

func TestTupleGet_ReturnsClone(t *testing.T) {
	h := newHeap(t)
	tuple := mkDefault(t, h, "(int, seq[int])")
	defer h.FreeValue(tuple)

	seq := intSeq(t, h, 1, 2)
	require.NoError(t, h.TupleSet(tuple, 1, seq))
	h.FreeValue(seq)

	got, err := h.TupleGet(tuple, 1)
	require.NoError(t, err)
	three := mkInt(t, h, 3)
	require.NoError(t, h.SeqInsert(got, 0, three))
	h.FreeValue(three)
	h.FreeValue(got)

	assert.Equal(t, "(0, [1, 2])", tuple.String())
	assert.Equal(t, 2, value.TupleSize(tuple))
}

func TestTuple_IndexOutOfRange(t *testing.T) {
	h := newHeap(t)
	tuple := mkDefault(t, h, "(int, int)")
	defer h.FreeValue(tuple)
	n := mkInt(t, h, 1)
	defer h.FreeValue(n)

	assertContract(t, "TupleGet", func() { h.TupleGet(tuple, 2) })
	assertContract(t, "TupleGet", func() { h.TupleGet(tuple, -1) })
	assertContract(t, "TupleSet", func() { h.TupleSet(tuple, 2, n) })
	assertContract(t, "TupleGet", func() { h.TupleGet(n, 0) })
}

func TestNamedTuple(t *testing.T) {
	h := newHeap(t)
	point := mkDefault(t, h, "(x: int, y: int, tag: event)")
	defer h.FreeValue(point)

	assert.Equal(t, "(x = 0, y = 0, tag = null)", point.String())

	five := mkInt(t, h, 5)
	defer h.FreeValue(five)
	require.NoError(t, h.NmdTupleSet(point, "y", five))

	y, err := h.NmdTupleGet(point, "y")
	require.NoError(t, err)
	defer h.FreeValue(y)
	assert.Equal(t, int32(5), value.PrimGetInt(y))

	byIndex, err := h.TupleGet(point, 1)
	require.NoError(t, err)
	defer h.FreeValue(byIndex)
	assert.True(t, h.IsEqualValue(y, byIndex))

	assertContract(t, "NmdTupleGet", func() { h.NmdTupleGet(point, "z") })
	assertContract(t, "NmdTupleSet", func() { h.NmdTupleSet(point, "tag", five) })

	plain := mkDefault(t, h, "(int, int)")
	defer h.FreeValue(plain)
	assertContract(t, "NmdTupleGet", func() { h.NmdTupleGet(plain, "x") })
}

func TestTupleSet_OutOfMemoryKeepsSlot(t *testing.T) {
	h := newHeap(t, value.WithLimits(value.Limits{MaxCells: 6}))

	// 1 node + 2 slots + 2 ints = 5 cells.
	tuple := mkDefault(t, h, "(int, any)")
	defer h.FreeValue(tuple)
	n := mkInt(t, h, 9) // 6 cells
	defer h.FreeValue(n)

	err := h.TupleSet(tuple, 0, n)
	require.ErrorIs(t, err, value.ErrOutOfMemory)
	assert.Equal(t, "(0, null)", tuple.String())
	assert.Equal(t, int64(1), h.Stats().OutOfMemory)
}

func TestTupleSet_NullTakesSlotKind(t *testing.T) {
	h := newHeap(t)
	tuple := mkDefault(t, h, "(event, int)")
	defer h.FreeValue(tuple)
	fresh := mkDefault(t, h, "(event, int)")
	defer h.FreeValue(fresh)
	null := mkNull(t, h)
	defer h.FreeValue(null)

	require.NoError(t, h.TupleSet(tuple, 0, null))

	assert.True(t, h.IsEqualValue(tuple, fresh))
	assert.Equal(t, h.GetHashCodeValue(fresh), h.GetHashCodeValue(tuple))

	got, err := h.TupleGet(tuple, 0)
	require.NoError(t, err)
	defer h.FreeValue(got)
	assert.Equal(t, value.KindEvent, got.Kind())
	assert.Equal(t, "event", got.Type().Name())
	assert.True(t, value.IsNullValue(got))
	assert.Equal(t, value.KindNull, null.Kind(), "the stored copy changes, not the argument")
}

func TestTupleSet_NestedNullTakesSlotKind(t *testing.T) {
	h := newHeap(t)
	outer := mkDefault(t, h, "((machine, int), bool)")
	defer h.FreeValue(outer)
	fresh := mkDefault(t, h, "((machine, int), bool)")
	defer h.FreeValue(fresh)
	inner := mkDefault(t, h, "(null, int)")
	defer h.FreeValue(inner)

	require.NoError(t, h.TupleSet(outer, 0, inner))
	assert.True(t, h.IsEqualValue(outer, fresh))
}
