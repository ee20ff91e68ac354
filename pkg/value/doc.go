/*
Package value implements the typed value model of the runtime.

Every value pairs an in-memory representation with a declared type from
package types. The declared type never changes under mutation; only the
values nested inside a container do, and every store is checked against
the slot's declared inner type.

# Kinds

  - Primitives: bool, event, int, machine, model and null. Event, machine
    and model values use NullSentinel as their null payload.
  - Foreign: an opaque payload whose clone, free, hash and equality are
    delegated to the registry entry for its tag.
  - Tuple: fixed arity, optionally with field names from a named tuple type.
  - Sequence: ordered, with explicit size and capacity.
  - Map: a chained hash table threaded with an insertion-order list.

# Ownership

There is no sharing between trees. Setters clone their input before
storing it and getters return fresh clones, so the caller owns every
value it receives and releases it with Heap.FreeValue. MapUpdateEx with
clone=false is the one ownership-transfer path.

# Errors

Caller bugs (bad index, kind mismatch, missing key on MapGet, ill-typed
store, illegal cast, use after free) panic with a *ContractError.
Running out of the heap budget returns an error wrapping ErrOutOfMemory
and leaves every container unchanged.

# Concurrency

Value trees are not synchronized. Confine each tree to one goroutine, or
guard it externally. Heap statistics are safe to read concurrently.
*/
package value
