package value

import (
	"github.com/aretw0/pvalue/pkg/types"
)

// TupleGet returns a clone of the element at index.
func (h *Heap) TupleGet(tuple *Value, index int) (*Value, error) {
	const op = "TupleGet"
	mustKind(op, tuple, KindTuple)
	checkIndex(op, index, len(tuple.elems))
	return h.clone(op, tuple.elems[index])
}

// TupleSet stores a clone of v at index and releases the previous element.
// v must inhabit the declared type of the slot.
func (h *Heap) TupleSet(tuple *Value, index int, v *Value) error {
	return h.tupleSet("TupleSet", tuple, index, v)
}

func (h *Heap) tupleSet(op string, tuple *Value, index int, v *Value) error {
	mustKind(op, tuple, KindTuple)
	checkIndex(op, index, len(tuple.elems))
	mustLive(op, v)
	slot := types.Elements(tuple.typ)[index]
	mustInhabit(op, v, slot, "element")

	c, err := h.clone(op, v)
	if err != nil {
		return err
	}
	h.conform(c, slot)
	old := tuple.elems[index]
	tuple.elems[index] = c
	h.free(old)
	return nil
}

// NmdTupleGet returns a clone of the field called name.
func (h *Heap) NmdTupleGet(tuple *Value, name string) (*Value, error) {
	const op = "NmdTupleGet"
	mustKind(op, tuple, KindTuple)
	return h.clone(op, tuple.elems[fieldIndex(op, tuple, name)])
}

// NmdTupleSet stores a clone of v in the field called name.
func (h *Heap) NmdTupleSet(tuple *Value, name string, v *Value) error {
	const op = "NmdTupleSet"
	mustKind(op, tuple, KindTuple)
	return h.tupleSet(op, tuple, fieldIndex(op, tuple, name), v)
}

func fieldIndex(op string, tuple *Value, name string) int {
	nt, ok := tuple.typ.(*types.NamedTupleType)
	if !ok {
		violate(op, "tuple of type %s has no field names", tuple.typ.Name())
	}
	i, ok := nt.FieldIndex(name)
	if !ok {
		violate(op, "no field %q in %s", name, nt.Name())
	}
	return i
}

// TupleSize returns the arity of a tuple.
func TupleSize(tuple *Value) int {
	mustKind("TupleSize", tuple, KindTuple)
	return len(tuple.elems)
}
