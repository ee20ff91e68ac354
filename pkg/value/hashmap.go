package value

import (
	"github.com/aretw0/pvalue/pkg/types"
)

// bucketCounts lists the bucket array sizes a map walks through as it grows.
// Each entry is a prime roughly twice the previous one.
var bucketCounts = []int{
	3, 13, 31, 61, 127, 251, 509, 1021, 2039, 4093, 8191, 16381, 32749,
	65521, 131071, 262139, 524287, 1048573, 2097143, 4194301, 8388593,
	16777213, 33554393, 67108859, 134217689, 268435399, 536870909,
	1073741789, 2147483647,
}

func nextBucketCount(n int) int {
	for _, c := range bucketCounts {
		if c > n {
			return c
		}
	}
	return 2*n + 1
}

// mapNode sits in exactly one bucket chain and one insertion-order position.
type mapNode struct {
	key   *Value
	value *Value
	hash  uint32 // hash of key

	bucketNext *mapNode
	insertNext *mapNode
	insertPrev *mapNode
}

// hashMap is a chained hash table threaded with a doubly linked list that
// records insertion order. len(buckets) is the capacity number.
type hashMap struct {
	size    int
	buckets []*mapNode
	first   *mapNode
	last    *mapNode
}

func (m *hashMap) bucketOf(hash uint32) int {
	return int(hash % uint32(len(m.buckets)))
}

func (m *hashMap) find(h *Heap, hash uint32, key *Value) *mapNode {
	for n := m.buckets[m.bucketOf(hash)]; n != nil; n = n.bucketNext {
		if n.hash == hash && h.equal(n.key, key) {
			return n
		}
	}
	return nil
}

// link appends n to its bucket chain and to the tail of the insertion order.
func (m *hashMap) link(n *mapNode) {
	m.appendToBucket(n)

	n.insertPrev = m.last
	n.insertNext = nil
	if m.last == nil {
		m.first = n
	} else {
		m.last.insertNext = n
	}
	m.last = n
	m.size++
}

func (m *hashMap) appendToBucket(n *mapNode) {
	n.bucketNext = nil
	slot := &m.buckets[m.bucketOf(n.hash)]
	for *slot != nil {
		slot = &(*slot).bucketNext
	}
	*slot = n
}

func (m *hashMap) unlink(n *mapNode) {
	for slot := &m.buckets[m.bucketOf(n.hash)]; *slot != nil; slot = &(*slot).bucketNext {
		if *slot == n {
			*slot = n.bucketNext
			break
		}
	}

	if n.insertPrev == nil {
		m.first = n.insertNext
	} else {
		n.insertPrev.insertNext = n.insertNext
	}
	if n.insertNext == nil {
		m.last = n.insertPrev
	} else {
		n.insertNext.insertPrev = n.insertPrev
	}
	n.bucketNext, n.insertNext, n.insertPrev = nil, nil, nil
	m.size--
}

// rehash rebuilds the bucket chains over count buckets.
// The insertion-order list is left untouched.
func (m *hashMap) rehash(count int) {
	m.buckets = make([]*mapNode, count)
	for n := m.first; n != nil; n = n.insertNext {
		m.appendToBucket(n)
	}
}

// newNode charges one cell for a node and, when clone is set, copies key and value.
// On failure nothing stays charged.
func (h *Heap) newNode(op string, key, val *Value, hash uint32, clone bool) (*mapNode, error) {
	if err := h.charge(op, 1); err != nil {
		return nil, err
	}
	if !clone {
		return &mapNode{key: key, value: val, hash: hash}, nil
	}

	ck, err := h.clone(op, key)
	if err != nil {
		h.release(1)
		return nil, err
	}
	cv, err := h.clone(op, val)
	if err != nil {
		h.free(ck)
		h.release(1)
		return nil, err
	}
	return &mapNode{key: ck, value: cv, hash: hash}, nil
}

func (h *Heap) freeNode(n *mapNode) {
	h.free(n.key)
	h.free(n.value)
	h.release(1)
}

func (h *Heap) newMap(op string, typ types.Type) (*Value, error) {
	count := bucketCounts[0]
	v, err := h.newValue(op, KindMap, typ, count)
	if err != nil {
		return nil, err
	}
	v.m = &hashMap{buckets: make([]*mapNode, count)}
	return v, nil
}

func mapType(op string, m *Value) *types.MapType {
	mt, ok := m.typ.(*types.MapType)
	if !ok {
		violate(op, "declared type %s is not a map type", m.typ.Name())
	}
	return mt
}

// MapUpdate maps key to a clone of value, cloning key too when it is new.
// An existing key keeps its position in the insertion order.
func (h *Heap) MapUpdate(m, key, val *Value) error {
	return h.mapUpdate("MapUpdate", m, key, val, true)
}

// MapUpdateEx is MapUpdate with an ownership-transfer fast path.
// With clone set to false the map takes ownership of key and val on success:
// the caller must not use or free them afterwards, and a redundant key is
// freed by the map. On error the caller still owns both, though a null key
// may already have been turned into the null of the map's key kind.
// Passing the same value as key and val without clone is a contract violation.
func (h *Heap) MapUpdateEx(m, key, val *Value, clone bool) error {
	return h.mapUpdate("MapUpdateEx", m, key, val, clone)
}

func (h *Heap) mapUpdate(op string, m, key, val *Value, clone bool) error {
	mustKind(op, m, KindMap)
	mustLive(op, key)
	mustLive(op, val)
	if !clone && key == val {
		violate(op, "key and value are the same value %s", key)
	}
	mt := mapType(op, m)
	mustInhabit(op, key, mt.Key, "key")
	mustInhabit(op, val, mt.Value, "value")

	// Lookups must see the key as it will be stored.
	if clone {
		key = h.conformed(key, mt.Key)
	} else {
		h.conform(key, mt.Key)
	}

	hm := m.m
	hash := h.hash(key)

	if n := hm.find(h, hash, key); n != nil {
		stored := val
		if clone {
			c, err := h.clone(op, val)
			if err != nil {
				return err
			}
			stored = c
		} else {
			h.free(key)
		}
		h.conform(stored, mt.Value)
		old := n.value
		n.value = stored
		h.free(old)
		return nil
	}

	node, err := h.newNode(op, key, val, hash, clone)
	if err != nil {
		return err
	}

	if float64(hm.size+1) > float64(len(hm.buckets))*h.loadFactor {
		from := len(hm.buckets)
		to := nextBucketCount(from)
		if err := h.charge(op, int64(to-from)); err != nil {
			if clone {
				h.freeNode(node)
			} else {
				h.release(1)
			}
			return err
		}
		hm.rehash(to)
		h.mapResizes.Add(1)
		h.logger.Debug("map resized", "from", from, "to", to, "size", hm.size)
	}

	h.conform(node.value, mt.Value)
	hm.link(node)
	return nil
}

// MapRemove deletes key and releases its key and value. Absent keys are ignored.
func (h *Heap) MapRemove(m, key *Value) {
	const op = "MapRemove"
	mustKind(op, m, KindMap)
	mustLive(op, key)

	n := h.lookup(op, m, key)
	if n == nil {
		return
	}
	m.m.unlink(n)
	h.freeNode(n)
}

// MapGet returns a clone of the value mapped to key. The key must be present.
func (h *Heap) MapGet(m, key *Value) (*Value, error) {
	const op = "MapGet"
	mustKind(op, m, KindMap)
	mustLive(op, key)

	n := h.lookup(op, m, key)
	if n == nil {
		violate(op, "key %s not present", key)
	}
	return h.clone(op, n.value)
}

// MapExists reports whether key is present.
func (h *Heap) MapExists(m, key *Value) bool {
	const op = "MapExists"
	mustKind(op, m, KindMap)
	mustLive(op, key)
	return h.lookup(op, m, key) != nil
}

// lookup finds the node for key, reading a null key as the null of the
// map's key kind.
func (h *Heap) lookup(op string, m, key *Value) *mapNode {
	key = h.conformed(key, mapType(op, m).Key)
	return m.m.find(h, h.hash(key), key)
}

// MapGetKeys returns a new sequence of the keys in insertion order.
func (h *Heap) MapGetKeys(m *Value) (*Value, error) {
	const op = "MapGetKeys"
	mustKind(op, m, KindMap)
	return h.mapProject(op, m, types.Seq(mapType(op, m).Key), func(n *mapNode) *Value { return n.key })
}

// MapGetValues returns a new sequence of the mapped values in insertion order.
func (h *Heap) MapGetValues(m *Value) (*Value, error) {
	const op = "MapGetValues"
	mustKind(op, m, KindMap)
	return h.mapProject(op, m, types.Seq(mapType(op, m).Value), func(n *mapNode) *Value { return n.value })
}

func (h *Heap) mapProject(op string, m *Value, typ types.Type, pick func(*mapNode) *Value) (*Value, error) {
	seq, err := h.newValue(op, KindSeq, typ, m.m.size)
	if err != nil {
		return nil, err
	}
	seq.elems = make([]*Value, 0, m.m.size)
	for n := m.m.first; n != nil; n = n.insertNext {
		c, err := h.clone(op, pick(n))
		if err != nil {
			h.free(seq)
			return nil, err
		}
		seq.elems = append(seq.elems, c)
	}
	return seq, nil
}

// MapSizeOf returns the number of keys.
func MapSizeOf(m *Value) int {
	mustKind("MapSizeOf", m, KindMap)
	return m.m.size
}

// MapCapacity returns the bucket count: the number of keys reachable in
// expected constant time before the next resize.
func MapCapacity(m *Value) int {
	mustKind("MapCapacity", m, KindMap)
	return len(m.m.buckets)
}
