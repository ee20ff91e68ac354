package value

import (
	"github.com/aretw0/pvalue/pkg/types"
)

func seqElemType(op string, seq *Value) types.Type {
	st, ok := seq.typ.(*types.SeqType)
	if !ok {
		violate(op, "declared type %s is not a sequence type", seq.typ.Name())
	}
	return st.Elem
}

// SeqGet returns a clone of the element at index, 0 <= index < size.
func (h *Heap) SeqGet(seq *Value, index int) (*Value, error) {
	const op = "SeqGet"
	mustKind(op, seq, KindSeq)
	checkIndex(op, index, len(seq.elems))
	return h.clone(op, seq.elems[index])
}

// SeqUpdate replaces the element at index, 0 <= index < size, with a clone of v.
func (h *Heap) SeqUpdate(seq *Value, index int, v *Value) error {
	const op = "SeqUpdate"
	mustKind(op, seq, KindSeq)
	checkIndex(op, index, len(seq.elems))
	mustLive(op, v)
	elem := seqElemType(op, seq)
	mustInhabit(op, v, elem, "element")

	c, err := h.clone(op, v)
	if err != nil {
		return err
	}
	h.conform(c, elem)
	old := seq.elems[index]
	seq.elems[index] = c
	h.free(old)
	return nil
}

// SeqInsert places a clone of v at index, 0 <= index <= size, shifting later
// elements right. Capacity doubles when full. On error the sequence is unchanged.
func (h *Heap) SeqInsert(seq *Value, index int, v *Value) error {
	const op = "SeqInsert"
	mustKind(op, seq, KindSeq)
	if index < 0 || index > len(seq.elems) {
		violate(op, "index %d out of range [0, %d]", index, len(seq.elems))
	}
	mustLive(op, v)
	elem := seqElemType(op, seq)
	mustInhabit(op, v, elem, "element")

	c, err := h.clone(op, v)
	if err != nil {
		return err
	}
	h.conform(c, elem)

	if size, capacity := len(seq.elems), cap(seq.elems); size == capacity {
		grown := max(h.seqMinCap, 2*capacity)
		if err := h.charge(op, int64(grown-capacity)); err != nil {
			h.free(c)
			return err
		}
		elems := make([]*Value, size, grown)
		copy(elems, seq.elems)
		seq.elems = elems
	}

	seq.elems = append(seq.elems, nil)
	copy(seq.elems[index+1:], seq.elems[index:])
	seq.elems[index] = c
	return nil
}

// SeqRemove releases the element at index, 0 <= index < size, and shifts
// later elements left. Capacity is kept.
func (h *Heap) SeqRemove(seq *Value, index int) {
	const op = "SeqRemove"
	mustKind(op, seq, KindSeq)
	checkIndex(op, index, len(seq.elems))

	old := seq.elems[index]
	last := len(seq.elems) - 1
	copy(seq.elems[index:], seq.elems[index+1:])
	seq.elems[last] = nil
	seq.elems = seq.elems[:last]
	h.free(old)
}

// SeqSizeOf returns the number of elements.
func SeqSizeOf(seq *Value) int {
	mustKind("SeqSizeOf", seq, KindSeq)
	return len(seq.elems)
}

// SeqCapacity returns the number of allocated element slots.
func SeqCapacity(seq *Value) int {
	mustKind("SeqCapacity", seq, KindSeq)
	return cap(seq.elems)
}
