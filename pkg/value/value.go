package value

import (
	"fmt"
	"math"

	"github.com/aretw0/pvalue/pkg/registry"
	"github.com/aretw0/pvalue/pkg/types"
)

// NullSentinel is the payload of a null event, machine or model value.
const NullSentinel uint32 = math.MaxInt32 - 1

// Kind discriminates the representation of a value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindEvent
	KindInt
	KindMachine
	KindModel
	KindForeign
	KindTuple
	KindSeq
	KindMap

	kindFreed
)

var kindNames = [...]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindEvent:   "event",
	KindInt:     "int",
	KindMachine: "machine",
	KindModel:   "model",
	KindForeign: "foreign",
	KindTuple:   "tuple",
	KindSeq:     "seq",
	KindMap:     "map",
	kindFreed:   "freed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a runtime datum: a representation paired with its declared type.
//
// A value is exclusively owned by whoever created it, or by the container it
// was stored in. Containers clone on store and getters return fresh clones,
// so two trees never share a node. Release a value with Heap.FreeValue.
type Value struct {
	typ  types.Type
	kind Kind
	bits uint32 // bool, event, int, machine and model payloads
	frgn any
	// Tuple slots, or sequence elements with len = size and cap = capacity.
	elems []*Value
	m     *hashMap
}

// Kind returns the representation discriminator.
func (v *Value) Kind() Kind {
	return v.kind
}

// Type returns the declared type. It does not change under mutation.
func (v *Value) Type() types.Type {
	return v.typ
}

// --- Constructors ---

func (h *Heap) mkPrim(op string, kind Kind, typ types.Type, bits uint32) (*Value, error) {
	v, err := h.newValue(op, kind, typ, 0)
	if err != nil {
		return nil, err
	}
	v.bits = bits
	return v, nil
}

func boolBits(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// MkBoolValue makes a boolean value.
func (h *Heap) MkBoolValue(b bool) (*Value, error) {
	return h.mkPrim("MkBoolValue", KindBool, types.Bool(), boolBits(b))
}

// MkEventValue makes an event value. Pass NullSentinel for the null event.
func (h *Heap) MkEventValue(id uint32) (*Value, error) {
	return h.mkPrim("MkEventValue", KindEvent, types.Event(), id)
}

// MkIntValue makes an integer value.
func (h *Heap) MkIntValue(n int32) (*Value, error) {
	return h.mkPrim("MkIntValue", KindInt, types.Int(), uint32(n))
}

// MkNullValue makes the null value.
func (h *Heap) MkNullValue() (*Value, error) {
	return h.mkPrim("MkNullValue", KindNull, types.Null(), NullSentinel)
}

// MkMachineValue makes a machine handle value.
func (h *Heap) MkMachineValue(id uint32) (*Value, error) {
	return h.mkPrim("MkMachineValue", KindMachine, types.Machine(), id)
}

// MkModelValue makes a model handle value.
func (h *Heap) MkModelValue(id uint32) (*Value, error) {
	return h.mkPrim("MkModelValue", KindModel, types.Model(), id)
}

// MkForeignValue makes a foreign value of type t holding a registry clone of payload.
// t must be a foreign type whose tag is registered, unless payload is nil.
func (h *Heap) MkForeignValue(t types.Type, payload any) (*Value, error) {
	const op = "MkForeignValue"
	ft, ok := t.(*types.ForeignType)
	if !ok {
		violate(op, "type %s is not foreign", t.Name())
	}

	var ops registry.ForeignType
	if payload != nil {
		ops = h.foreignOps(op, ft.Tag)
	}
	v, err := h.newValue(op, KindForeign, t, 0)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		v.frgn = ops.Clone(payload)
	}
	return v, nil
}

// --- Primitive accessors ---

// PrimSetBool overwrites the payload of a boolean value.
func PrimSetBool(v *Value, b bool) {
	mustKind("PrimSetBool", v, KindBool)
	v.bits = boolBits(b)
}

// PrimGetBool reads a boolean value.
func PrimGetBool(v *Value) bool {
	mustKind("PrimGetBool", v, KindBool)
	return v.bits != 0
}

// PrimSetEvent overwrites the payload of an event value.
func PrimSetEvent(v *Value, id uint32) {
	mustKind("PrimSetEvent", v, KindEvent)
	v.bits = id
}

// PrimGetEvent reads an event value.
func PrimGetEvent(v *Value) uint32 {
	mustKind("PrimGetEvent", v, KindEvent)
	return v.bits
}

// PrimSetInt overwrites the payload of an integer value.
func PrimSetInt(v *Value, n int32) {
	mustKind("PrimSetInt", v, KindInt)
	v.bits = uint32(n)
}

// PrimGetInt reads an integer value.
func PrimGetInt(v *Value) int32 {
	mustKind("PrimGetInt", v, KindInt)
	return int32(v.bits)
}

// PrimSetMachine overwrites the payload of a machine value.
func PrimSetMachine(v *Value, id uint32) {
	mustKind("PrimSetMachine", v, KindMachine)
	v.bits = id
}

// PrimGetMachine reads a machine value.
func PrimGetMachine(v *Value) uint32 {
	mustKind("PrimGetMachine", v, KindMachine)
	return v.bits
}

// PrimSetModel overwrites the payload of a model value.
func PrimSetModel(v *Value, id uint32) {
	mustKind("PrimSetModel", v, KindModel)
	v.bits = id
}

// PrimGetModel reads a model value.
func PrimGetModel(v *Value) uint32 {
	mustKind("PrimGetModel", v, KindModel)
	return v.bits
}

// ForeignPayload returns the payload of a foreign value without cloning it.
// The payload stays owned by v.
func ForeignPayload(v *Value) any {
	mustKind("ForeignPayload", v, KindForeign)
	return v.frgn
}

// IsNullValue reports whether v is the null value, or an event, machine or
// model value holding NullSentinel.
func IsNullValue(v *Value) bool {
	mustLive("IsNullValue", v)
	switch v.kind {
	case KindNull:
		return true
	case KindEvent, KindMachine, KindModel:
		return v.bits == NullSentinel
	}
	return false
}

func foreignTag(v *Value) string {
	return v.typ.(*types.ForeignType).Tag
}
