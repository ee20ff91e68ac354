package value

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// CloneValue deep-copies v. Foreign payloads are cloned through the registry.
// On ErrOutOfMemory every partially built node is released again.
func (h *Heap) CloneValue(v *Value) (*Value, error) {
	return h.clone("CloneValue", v)
}

// FreeValue releases v and every value it owns. v must not be used afterwards;
// later use, including a second FreeValue, is reported as a contract violation.
// Freeing nil is a no-op.
func (h *Heap) FreeValue(v *Value) {
	if v == nil {
		return
	}
	mustLive("FreeValue", v)
	h.free(v)
}

// IsEqualValue reports structural equality. Tuples and sequences compare
// elementwise in order; maps compare as sets of key/value pairs.
func (h *Heap) IsEqualValue(a, b *Value) bool {
	mustLive("IsEqualValue", a)
	mustLive("IsEqualValue", b)
	return h.equal(a, b)
}

// GetHashCodeValue returns a structural hash: IsEqualValue(a, b) implies
// equal hash codes. Map hashes do not depend on insertion order.
func (h *Heap) GetHashCodeValue(v *Value) uint32 {
	mustLive("GetHashCodeValue", v)
	return h.hash(v)
}

func (h *Heap) clone(op string, v *Value) (*Value, error) {
	mustLive(op, v)

	switch v.kind {
	case KindTuple:
		c, err := h.newValue(op, KindTuple, v.typ, len(v.elems))
		if err != nil {
			return nil, err
		}
		c.elems = make([]*Value, len(v.elems))
		for i, e := range v.elems {
			ce, err := h.clone(op, e)
			if err != nil {
				h.free(c)
				return nil, err
			}
			c.elems[i] = ce
		}
		return c, nil

	case KindSeq:
		c, err := h.newValue(op, KindSeq, v.typ, cap(v.elems))
		if err != nil {
			return nil, err
		}
		c.elems = make([]*Value, 0, cap(v.elems))
		for _, e := range v.elems {
			ce, err := h.clone(op, e)
			if err != nil {
				h.free(c)
				return nil, err
			}
			c.elems = append(c.elems, ce)
		}
		return c, nil

	case KindMap:
		c, err := h.newValue(op, KindMap, v.typ, len(v.m.buckets))
		if err != nil {
			return nil, err
		}
		c.m = &hashMap{buckets: make([]*mapNode, len(v.m.buckets))}
		for n := v.m.first; n != nil; n = n.insertNext {
			node, err := h.newNode(op, n.key, n.value, n.hash, true)
			if err != nil {
				h.free(c)
				return nil, err
			}
			c.m.link(node)
		}
		return c, nil

	case KindForeign:
		c, err := h.newValue(op, KindForeign, v.typ, 0)
		if err != nil {
			return nil, err
		}
		if v.frgn != nil {
			c.frgn = h.foreignOps(op, foreignTag(v)).Clone(v.frgn)
		}
		return c, nil
	}

	return h.mkPrim(op, v.kind, v.typ, v.bits)
}

// free releases v's subtree. Nil slots only occur in partially built clones.
func (h *Heap) free(v *Value) {
	if v == nil {
		return
	}

	switch v.kind {
	case kindFreed:
		violate("FreeValue", "double free")
	case KindTuple:
		for _, e := range v.elems {
			h.free(e)
		}
		h.release(int64(len(v.elems)))
	case KindSeq:
		for _, e := range v.elems {
			h.free(e)
		}
		h.release(int64(cap(v.elems)))
	case KindMap:
		for n := v.m.first; n != nil; {
			next := n.insertNext
			h.freeNode(n)
			n = next
		}
		h.release(int64(len(v.m.buckets)))
	case KindForeign:
		if v.frgn != nil {
			h.foreignOps("FreeValue", foreignTag(v)).Free(v.frgn)
		}
	}

	h.dropValue(v)
}

func (h *Heap) equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindTuple, KindSeq:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !h.equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true

	case KindMap:
		if a.m.size != b.m.size {
			return false
		}
		for n := a.m.first; n != nil; n = n.insertNext {
			other := b.m.find(h, n.hash, n.key)
			if other == nil || !h.equal(n.value, other.value) {
				return false
			}
		}
		return true

	case KindForeign:
		tag := foreignTag(a)
		if tag != foreignTag(b) {
			return false
		}
		if a.frgn == nil || b.frgn == nil {
			return a.frgn == nil && b.frgn == nil
		}
		return h.foreignOps("IsEqualValue", tag).Equal(a.frgn, b.frgn)
	}

	return a.bits == b.bits
}

const hashPrime = 31

func (h *Heap) hash(v *Value) uint32 {
	switch v.kind {
	case KindTuple, KindSeq:
		acc := hashBits(v.kind, uint32(len(v.elems)))
		for _, e := range v.elems {
			acc = acc*hashPrime + h.hash(e)
		}
		return acc

	case KindMap:
		// Addition commutes, so the result is independent of insertion order.
		acc := hashBits(KindMap, 0)
		for n := v.m.first; n != nil; n = n.insertNext {
			pair := n.hash*0x9E3779B1 + h.hash(n.value)
			acc += pair ^ (pair >> 16)
		}
		return acc

	case KindForeign:
		tag := foreignTag(v)
		acc := fold64(xxhash.Sum64String(tag))
		if v.frgn != nil {
			acc = acc*hashPrime + h.foreignOps("GetHashCodeValue", tag).Hash(v.frgn)
		}
		return acc
	}

	return hashBits(v.kind, v.bits)
}

func hashBits(kind Kind, bits uint32) uint32 {
	var buf [5]byte
	buf[0] = byte(kind)
	binary.LittleEndian.PutUint32(buf[1:], bits)
	return fold64(xxhash.Sum64(buf[:]))
}

func fold64(x uint64) uint32 {
	return uint32(x) ^ uint32(x>>32)
}
