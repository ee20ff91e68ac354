package value

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/pvalue/internal/logging"
	"github.com/aretw0/pvalue/pkg/registry"
	"github.com/aretw0/pvalue/pkg/types"
)

// Default tuning values.
const (
	DefaultLoadFactor     = 1.0
	DefaultSeqMinCapacity = 4
)

// Limits bounds the memory a heap may hand out.
//
// A cell is the unit of accounting: every value node, every map node,
// every tuple slot, every allocated sequence slot and every map bucket
// costs one cell.
type Limits struct {
	MaxCells int64 // 0 means unlimited
}

// Stats is a snapshot of heap counters.
type Stats struct {
	LiveValues  int64 // Value nodes currently owned by some tree
	LiveCells   int64 // Cells currently charged
	Allocations int64 // Value nodes created since the heap was built
	Frees       int64 // Value nodes released since the heap was built
	MapResizes  int64 // Bucket array rebuilds
	OutOfMemory int64 // Operations refused for lack of budget
}

// Heap owns the accounting and the collaborators every value operation needs.
//
// Value trees are not synchronized: confine each tree to one goroutine.
// The heap counters themselves are atomic so Stats may be read concurrently.
type Heap struct {
	registry   *registry.Registry
	logger     *slog.Logger
	limits     Limits
	loadFactor float64
	seqMinCap  int

	liveValues  atomic.Int64
	liveCells   atomic.Int64
	allocations atomic.Int64
	frees       atomic.Int64
	mapResizes  atomic.Int64
	outOfMemory atomic.Int64
}

// Option defines a functional option for configuring the Heap.
type Option func(*Heap)

// WithRegistry injects the foreign registry used for foreign payloads.
func WithRegistry(reg *registry.Registry) Option {
	return func(h *Heap) {
		h.registry = reg
	}
}

// WithLogger sets a custom structured logger for the heap.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Heap) {
		h.logger = logger
	}
}

// WithLimits bounds the number of live cells.
func WithLimits(limits Limits) Option {
	return func(h *Heap) {
		h.limits = limits
	}
}

// WithLoadFactor sets the map size/bucket ratio above which a map is resized.
// Non-positive values are ignored.
func WithLoadFactor(f float64) Option {
	return func(h *Heap) {
		if f > 0 {
			h.loadFactor = f
		}
	}
}

// WithSeqMinCapacity sets the capacity of a sequence's first allocation.
// Non-positive values are ignored.
func WithSeqMinCapacity(n int) Option {
	return func(h *Heap) {
		if n > 0 {
			h.seqMinCap = n
		}
	}
}

// NewHeap creates a heap. Without options it has no budget, an empty
// foreign registry and a no-op logger.
func NewHeap(opts ...Option) *Heap {
	h := &Heap{
		loadFactor: DefaultLoadFactor,
		seqMinCap:  DefaultSeqMinCapacity,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logging.NewNop()
	}
	if h.registry == nil {
		h.registry = registry.NewRegistry(registry.WithLogger(h.logger))
	}
	return h
}

// Registry returns the foreign registry the heap delegates to.
func (h *Heap) Registry() *registry.Registry {
	return h.registry
}

// Limits returns the configured budget.
func (h *Heap) Limits() Limits {
	return h.limits
}

// Stats returns a snapshot of the heap counters.
func (h *Heap) Stats() Stats {
	return Stats{
		LiveValues:  h.liveValues.Load(),
		LiveCells:   h.liveCells.Load(),
		Allocations: h.allocations.Load(),
		Frees:       h.frees.Load(),
		MapResizes:  h.mapResizes.Load(),
		OutOfMemory: h.outOfMemory.Load(),
	}
}

// charge reserves cells or reports ErrOutOfMemory without reserving anything.
func (h *Heap) charge(op string, cells int64) error {
	if cells <= 0 {
		return nil
	}
	n := h.liveCells.Add(cells)
	if h.limits.MaxCells > 0 && n > h.limits.MaxCells {
		h.liveCells.Add(-cells)
		h.outOfMemory.Add(1)
		h.logger.Warn("heap budget exhausted",
			"op", op, "requested", cells, "live", n-cells, "max", h.limits.MaxCells)
		return fmt.Errorf("%s: %w (requested %d cells, %d live, limit %d)",
			op, ErrOutOfMemory, cells, n-cells, h.limits.MaxCells)
	}
	return nil
}

func (h *Heap) release(cells int64) {
	if cells > 0 {
		h.liveCells.Add(-cells)
	}
}

// newValue charges one cell for the node plus extra cells for its storage.
func (h *Heap) newValue(op string, kind Kind, typ types.Type, extra int) (*Value, error) {
	if err := h.charge(op, 1+int64(extra)); err != nil {
		return nil, err
	}
	h.liveValues.Add(1)
	h.allocations.Add(1)
	return &Value{kind: kind, typ: typ}, nil
}

// dropValue releases the node cell and poisons v.
func (h *Heap) dropValue(v *Value) {
	h.release(1)
	h.liveValues.Add(-1)
	h.frees.Add(1)
	*v = Value{kind: kindFreed}
}

// foreignOps resolves the callbacks for a foreign tag.
// A missing registration is a wiring bug, not a runtime condition.
func (h *Heap) foreignOps(op, tag string) registry.ForeignType {
	ft, err := h.registry.Lookup(tag)
	if err != nil {
		violate(op, "%v", err)
	}
	return ft
}
