package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/pvalue/internal/logging"
)

// ErrUnknownTag is returned when a foreign tag has no registered callbacks.
var ErrUnknownTag = errors.New("unknown foreign tag")

// ForeignType defines the callbacks the value core delegates to for opaque payloads.
// The core never passes a nil payload to these callbacks.
type ForeignType interface {
	// Clone returns an independent copy of payload.
	Clone(payload any) any
	// Free releases resources held by payload. The payload is not used afterwards.
	Free(payload any)
	// Hash returns a hash code consistent with Equal.
	Hash(payload any) uint32
	// Equal reports whether two payloads of this tag are equivalent.
	Equal(a, b any) bool
}

// Funcs adapts plain functions to ForeignType.
// Nil fields fall back to identity clone, no-op free, zero hash and == equality.
type Funcs struct {
	CloneFunc func(payload any) any
	FreeFunc  func(payload any)
	HashFunc  func(payload any) uint32
	EqualFunc func(a, b any) bool
}

func (f Funcs) Clone(payload any) any {
	if f.CloneFunc == nil {
		return payload
	}
	return f.CloneFunc(payload)
}

func (f Funcs) Free(payload any) {
	if f.FreeFunc != nil {
		f.FreeFunc(payload)
	}
}

func (f Funcs) Hash(payload any) uint32 {
	if f.HashFunc == nil {
		return 0
	}
	return f.HashFunc(payload)
}

func (f Funcs) Equal(a, b any) bool {
	if f.EqualFunc == nil {
		return a == b
	}
	return f.EqualFunc(a, b)
}

// Registry manages the foreign types known to a runtime.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]ForeignType
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to trace registrations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		types: make(map[string]ForeignType),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Register adds a foreign type to the registry.
// If a type with the same tag exists, it is overwritten.
func (r *Registry) Register(tag string, ft ForeignType) {
	r.mu.Lock()
	_, replaced := r.types[tag]
	r.types[tag] = ft
	r.mu.Unlock()

	r.logger.Debug("foreign type registered", "tag", tag, "replaced", replaced)
}

// Lookup returns the callbacks registered for tag.
// Returns an error wrapping ErrUnknownTag if the tag is not registered.
func (r *Registry) Lookup(tag string) (ForeignType, error) {
	r.mu.RLock()
	ft, ok := r.types[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	return ft, nil
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.types))
	for tag := range r.types {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
