package value_test

import (
	"testing"

	"github.com/aretw0/pvalue/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqInsert_Positions(t *testing.T) {
	h := newHeap(t)
	seq := intSeq(t, h, 1, 2, 3)
	defer h.FreeValue(seq)

	front, back, mid := mkInt(t, h, 0), mkInt(t, h, 4), mkInt(t, h, 9)
	defer h.FreeValue(front)
	defer h.FreeValue(back)
	defer h.FreeValue(mid)

	require.NoError(t, h.SeqInsert(seq, 0, front))
	require.NoError(t, h.SeqInsert(seq, 4, back))
	require.NoError(t, h.SeqInsert(seq, 2, mid))

	assert.Equal(t, []int32{0, 1, 9, 2, 3, 4}, ints(t, h, seq))
	assert.Equal(t, 6, value.SeqSizeOf(seq))
}

func TestSeq_InsertRemoveRoundTrip(t *testing.T) {
	h := newHeap(t)
	orig := []int32{10, 20, 30, 40, 50}

	for i := 0; i <= len(orig); i++ {
		seq := intSeq(t, h, orig...)
		want, err := h.CloneValue(seq)
		require.NoError(t, err)

		x := mkInt(t, h, -1)
		require.NoError(t, h.SeqInsert(seq, i, x))
		h.FreeValue(x)
		assert.Equal(t, len(orig)+1, value.SeqSizeOf(seq))

		h.SeqRemove(seq, i)
		assert.True(t, h.IsEqualValue(want, seq), "insert/remove at %d changed %s", i, seq)

		h.FreeValue(want)
		h.FreeValue(seq)
	}
}

func TestSeq_CapacityGrowth(t *testing.T) {
	h := newHeap(t, value.WithSeqMinCapacity(2))
	seq := mkDefault(t, h, "seq[int]")
	defer h.FreeValue(seq)

	assert.Equal(t, 0, value.SeqCapacity(seq))

	wantCaps := []int{2, 2, 4, 4, 8, 8, 8, 8, 16}
	for i, want := range wantCaps {
		n := mkInt(t, h, int32(i))
		require.NoError(t, h.SeqInsert(seq, value.SeqSizeOf(seq), n))
		h.FreeValue(n)
		assert.Equal(t, want, value.SeqCapacity(seq), "after %d inserts", i+1)
		assert.GreaterOrEqual(t, value.SeqCapacity(seq), value.SeqSizeOf(seq))
	}

	// Removal never shrinks the allocation.
	h.SeqRemove(seq, 0)
	assert.Equal(t, 16, value.SeqCapacity(seq))
}

func TestSeqUpdate(t *testing.T) {
	h := newHeap(t)
	seq := intSeq(t, h, 1, 2, 3)
	defer h.FreeValue(seq)

	n := mkInt(t, h, 7)
	defer h.FreeValue(n)
	require.NoError(t, h.SeqUpdate(seq, 1, n))
	assert.Equal(t, []int32{1, 7, 3}, ints(t, h, seq))

	b := mkBool(t, h, true)
	defer h.FreeValue(b)
	assertContract(t, "SeqUpdate", func() { h.SeqUpdate(seq, 0, b) })
	assertContract(t, "SeqUpdate", func() { h.SeqUpdate(seq, 3, n) })
}

func TestSeq_IndexContracts(t *testing.T) {
	h := newHeap(t)
	seq := intSeq(t, h, 1)
	defer h.FreeValue(seq)
	n := mkInt(t, h, 2)
	defer h.FreeValue(n)

	assertContract(t, "SeqGet", func() { h.SeqGet(seq, 1) })
	assertContract(t, "SeqInsert", func() { h.SeqInsert(seq, 2, n) })
	assertContract(t, "SeqInsert", func() { h.SeqInsert(seq, -1, n) })
	assertContract(t, "SeqRemove", func() { h.SeqRemove(seq, 1) })
	assertContract(t, "SeqSizeOf", func() { value.SeqSizeOf(n) })
}

func TestSeqInsert_OutOfMemoryLeavesSequence(t *testing.T) {
	h := newHeap(t, value.WithSeqMinCapacity(2), value.WithLimits(value.Limits{MaxCells: 8}))
	seq := intSeq(t, h, 1, 2) // node + 2 slots + 2 ints = 5 cells
	defer h.FreeValue(seq)
	n := mkInt(t, h, 3) // 6 cells
	defer h.FreeValue(n)

	// The clone fits (7) but doubling to 4 slots does not (9).
	err := h.SeqInsert(seq, 1, n)
	require.ErrorIs(t, err, value.ErrOutOfMemory)
	assert.Equal(t, []int32{1, 2}, ints(t, h, seq))
	assert.Equal(t, 2, value.SeqCapacity(seq))
	assert.Equal(t, int64(6), h.Stats().LiveCells, "failed insert must not keep cells")
}

func TestSeqInsert_NullTakesElementKind(t *testing.T) {
	h := newHeap(t)
	seq := mkDefault(t, h, "seq[model]")
	defer h.FreeValue(seq)
	null := mkNull(t, h)
	defer h.FreeValue(null)
	noModel := mkDefault(t, h, "model")
	defer h.FreeValue(noModel)

	require.NoError(t, h.SeqInsert(seq, 0, null))
	require.NoError(t, h.SeqInsert(seq, 1, noModel))

	first, err := h.SeqGet(seq, 0)
	require.NoError(t, err)
	defer h.FreeValue(first)
	assert.Equal(t, value.KindModel, first.Kind())
	assert.True(t, h.IsEqualValue(first, noModel))

	require.NoError(t, h.SeqUpdate(seq, 1, null))
	second, err := h.SeqGet(seq, 1)
	require.NoError(t, err)
	defer h.FreeValue(second)
	assert.True(t, h.IsEqualValue(first, second))
}
