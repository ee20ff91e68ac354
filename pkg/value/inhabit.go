package value

import (
	"github.com/aretw0/pvalue/pkg/types"
)

// InhabitsType reports whether the shape of v matches t.
//
// any matches every value. The null value matches null, event, machine and
// model. Foreign values match only their own tag. Containers match when the
// container kinds agree and every element matches the inner type; named
// tuples also require the same field names.
func InhabitsType(v *Value, t types.Type) bool {
	mustLive("InhabitsType", v)
	return inhabits(v, t)
}

func inhabits(v *Value, t types.Type) bool {
	// A declared type always bounds the shape, so a subtype relation settles it.
	if types.IsSubtype(v.typ, t) {
		return true
	}

	switch v.kind {
	case KindNull:
		switch t.Kind() {
		case types.KindNull, types.KindEvent, types.KindMachine, types.KindModel:
			return true
		}
		return false
	case KindBool:
		return t.Kind() == types.KindBool
	case KindEvent:
		return t.Kind() == types.KindEvent
	case KindInt:
		return t.Kind() == types.KindInt
	case KindMachine:
		return t.Kind() == types.KindMachine
	case KindModel:
		return t.Kind() == types.KindModel
	case KindForeign:
		ft, ok := t.(*types.ForeignType)
		return ok && ft.Tag == foreignTag(v)

	case KindTuple:
		if v.typ.Kind() != t.Kind() {
			return false
		}
		elems := types.Elements(t)
		if len(elems) != len(v.elems) {
			return false
		}
		if want, ok := t.(*types.NamedTupleType); ok {
			have := v.typ.(*types.NamedTupleType)
			for i := range want.Fields {
				if want.Fields[i].Name != have.Fields[i].Name {
					return false
				}
			}
		}
		for i, e := range v.elems {
			if !inhabits(e, elems[i]) {
				return false
			}
		}
		return true

	case KindSeq:
		st, ok := t.(*types.SeqType)
		if !ok {
			return false
		}
		for _, e := range v.elems {
			if !inhabits(e, st.Elem) {
				return false
			}
		}
		return true

	case KindMap:
		mt, ok := t.(*types.MapType)
		if !ok {
			return false
		}
		for n := v.m.first; n != nil; n = n.insertNext {
			if !inhabits(n.key, mt.Key) || !inhabits(n.value, mt.Value) {
				return false
			}
		}
		return true
	}
	return false
}

func mustInhabit(op string, v *Value, t types.Type, what string) {
	if !inhabits(v, t) {
		violate(op, "%s %s does not inhabit %s", what, v, t.Name())
	}
}

// CastValue returns a clone of v whose declared type is t.
// The cast must be legal: v has to inhabit t, otherwise CastValue panics.
// Casting to any keeps the value's own declared type, and casting the null
// value to event, machine or model yields the null of that kind.
func (h *Heap) CastValue(v *Value, t types.Type) (*Value, error) {
	const op = "CastValue"
	mustLive(op, v)
	if !inhabits(v, t) {
		violate(op, "cannot cast %s of type %s to %s", v, v.typ.Name(), t.Name())
	}

	c, err := h.clone(op, v)
	if err != nil {
		return nil, err
	}
	if t.Kind() == types.KindAny {
		return c, nil
	}
	h.conform(c, t)
	c.typ = t
	return c, nil
}

// nullKinds maps the slot types whose null is a sentinel payload to the kind
// that carries it.
var nullKinds = map[types.Kind]Kind{
	types.KindEvent:   KindEvent,
	types.KindMachine: KindMachine,
	types.KindModel:   KindModel,
}

// needsConform reports whether conform would change v for a slot of type t.
func needsConform(v *Value, t types.Type) bool {
	switch v.kind {
	case KindNull:
		_, ok := nullKinds[t.Kind()]
		return ok
	case KindTuple:
		elems := types.Elements(t)
		if len(elems) != len(v.elems) {
			return false
		}
		for i, e := range v.elems {
			if needsConform(e, elems[i]) {
				return true
			}
		}
	case KindSeq:
		if st, ok := t.(*types.SeqType); ok {
			for _, e := range v.elems {
				if needsConform(e, st.Elem) {
					return true
				}
			}
		}
	case KindMap:
		if mt, ok := t.(*types.MapType); ok {
			for n := v.m.first; n != nil; n = n.insertNext {
				if needsConform(n.key, mt.Key) || needsConform(n.value, mt.Value) {
					return true
				}
			}
		}
	}
	return false
}

// conform rewrites, in place, every null value inside v that sits in an
// event, machine or model slot of t into the null of that kind, so a stored
// null compares equal to the slot's default. v must be owned by the caller
// and must inhabit t. It reports whether anything changed.
func (h *Heap) conform(v *Value, t types.Type) bool {
	switch v.kind {
	case KindNull:
		kind, ok := nullKinds[t.Kind()]
		if !ok {
			return false
		}
		v.kind, v.typ, v.bits = kind, t, NullSentinel
		return true

	case KindTuple:
		elems := types.Elements(t)
		if len(elems) != len(v.elems) {
			return false
		}
		changed := false
		for i, e := range v.elems {
			changed = h.conform(e, elems[i]) || changed
		}
		return changed

	case KindSeq:
		st, ok := t.(*types.SeqType)
		if !ok {
			return false
		}
		changed := false
		for _, e := range v.elems {
			changed = h.conform(e, st.Elem) || changed
		}
		return changed

	case KindMap:
		mt, ok := t.(*types.MapType)
		if !ok {
			return false
		}
		changed, rekey := false, false
		for n := v.m.first; n != nil; n = n.insertNext {
			rekey = h.conform(n.key, mt.Key) || rekey
			changed = h.conform(n.value, mt.Value) || changed
		}
		if rekey {
			h.rekey(v.m)
		}
		return changed || rekey
	}
	return false
}

// conformed returns v as conform would leave it, without touching v. Parts
// that need no change are shared; the rest are copies outside the heap's
// accounting, so the result may only be read, never stored or freed.
func (h *Heap) conformed(v *Value, t types.Type) *Value {
	if !needsConform(v, t) {
		return v
	}

	c := *v
	switch v.kind {
	case KindNull:
		c.kind, c.typ, c.bits = nullKinds[t.Kind()], t, NullSentinel
	case KindTuple:
		elems := types.Elements(t)
		c.elems = make([]*Value, len(v.elems))
		for i, e := range v.elems {
			c.elems[i] = h.conformed(e, elems[i])
		}
	case KindSeq:
		st := t.(*types.SeqType)
		c.elems = make([]*Value, len(v.elems), cap(v.elems))
		for i, e := range v.elems {
			c.elems[i] = h.conformed(e, st.Elem)
		}
	case KindMap:
		mt := t.(*types.MapType)
		c.m = &hashMap{buckets: make([]*mapNode, len(v.m.buckets))}
		for n := v.m.first; n != nil; n = n.insertNext {
			key, val := h.conformed(n.key, mt.Key), h.conformed(n.value, mt.Value)
			hash := h.hash(key)
			if kept := c.m.find(h, hash, key); kept != nil {
				kept.value = val
				continue
			}
			c.m.link(&mapNode{key: key, value: val, hash: hash})
		}
	}
	return &c
}

// rekey recomputes every key hash and rebuilds the chains in insertion order.
// Keys that became equal collapse the way MapUpdate would: the first keeps
// its position and takes the later value.
func (h *Heap) rekey(m *hashMap) {
	var nodes []*mapNode
	for n := m.first; n != nil; n = n.insertNext {
		nodes = append(nodes, n)
	}

	m.buckets = make([]*mapNode, len(m.buckets))
	m.first, m.last, m.size = nil, nil, 0
	for _, n := range nodes {
		n.hash = h.hash(n.key)
		if kept := m.find(h, n.hash, n.key); kept != nil {
			h.free(kept.value)
			kept.value = n.value
			h.free(n.key)
			h.release(1)
			continue
		}
		m.link(n)
	}
}

// MkDefaultValue builds the canonical zero value of t:
//
//	any, null              null
//	bool                   false
//	event, machine, model  null of that kind
//	int                    0
//	foreign T              nil payload of type T
//	seq[T], map[K, V]      empty container
//	(T1, ..., Tn)          tuple of defaults, likewise for named tuples
func (h *Heap) MkDefaultValue(t types.Type) (*Value, error) {
	return h.mkDefault("MkDefaultValue", t)
}

func (h *Heap) mkDefault(op string, t types.Type) (*Value, error) {
	switch t.Kind() {
	case types.KindAny, types.KindNull:
		return h.mkPrim(op, KindNull, types.Null(), NullSentinel)
	case types.KindBool:
		return h.mkPrim(op, KindBool, t, 0)
	case types.KindInt:
		return h.mkPrim(op, KindInt, t, 0)
	case types.KindEvent:
		return h.mkPrim(op, KindEvent, t, NullSentinel)
	case types.KindMachine:
		return h.mkPrim(op, KindMachine, t, NullSentinel)
	case types.KindModel:
		return h.mkPrim(op, KindModel, t, NullSentinel)
	case types.KindForeign:
		return h.newValue(op, KindForeign, t, 0)
	case types.KindSeq:
		return h.newValue(op, KindSeq, t, 0)
	case types.KindMap:
		return h.newMap(op, t)
	case types.KindTuple, types.KindNamedTuple:
		elems := types.Elements(t)
		v, err := h.newValue(op, KindTuple, t, len(elems))
		if err != nil {
			return nil, err
		}
		v.elems = make([]*Value, len(elems))
		for i, et := range elems {
			e, err := h.mkDefault(op, et)
			if err != nil {
				h.free(v)
				return nil, err
			}
			v.elems[i] = e
		}
		return v, nil
	}
	violate(op, "unsupported type %s", t.Name())
	return nil, nil
}
