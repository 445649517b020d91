package unify

import (
	"maps"
	"sync"
	"sync/atomic"
)

// Descriptor is the host's reified representation of a type. Descriptors are compared by
// identity, so hosts must use comparable values, normally pointers.
type Descriptor = any

// Binding is the content of a descriptor cell: the descriptor and the auxiliary per-type
// state the host attaches alongside it.
type Binding struct {
	Descriptor Descriptor
	Aux        map[string]any
}

// Cell is a type's write-once descriptor storage.
//
// TryInitialize is the normal one-time write used by the host's construction path.
// ForceRebind is the privileged overwrite reserved for Rebind; it bypasses the write-once guard.
type Cell interface {
	// Load returns the published binding, if any.
	Load() (Binding, bool)
	// TryInitialize publishes b unless the cell is already initialized. It reports whether b won.
	TryInitialize(b Binding) bool
	// ForceRebind replaces the cell content with b, discarding anything staged or published.
	ForceRebind(b Binding)
	// GetOrInit returns the published binding, building and publishing one when the cell is empty.
	GetOrInit(build func() (Binding, error)) (Binding, error)
}

// LazyCell is the in-process Cell. The zero value is an empty cell.
//
// A construction path may stage auxiliary state before the binding is published; the staged
// entries are merged into the binding by TryInitialize and dropped by ForceRebind.
type LazyCell struct {
	binding atomic.Pointer[Binding]

	mu     sync.Mutex
	staged map[string]any
}

var _ Cell = (*LazyCell)(nil)

// Load returns the published binding.
func (c *LazyCell) Load() (Binding, bool) {
	b := c.binding.Load()
	if b == nil {
		return Binding{}, false
	}
	return *b, true
}

// Stage records auxiliary state for the binding that is about to be published.
func (c *LazyCell) Stage(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.staged == nil {
		c.staged = make(map[string]any)
	}
	c.staged[key] = value
}

// Staged returns a copy of the auxiliary state staged so far.
func (c *LazyCell) Staged() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.staged)
}

// TryInitialize publishes b with the staged auxiliary state merged in.
func (c *LazyCell) TryInitialize(b Binding) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.binding.Load() != nil {
		return false
	}

	aux := make(map[string]any, len(c.staged)+len(b.Aux))
	maps.Copy(aux, c.staged)
	maps.Copy(aux, b.Aux)
	b.Aux = aux

	c.binding.Store(&b)
	c.staged = nil
	return true
}

// ForceRebind replaces the cell content with b.
func (c *LazyCell) ForceRebind(b Binding) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b.Aux == nil {
		b.Aux = make(map[string]any)
	}
	c.binding.Store(&b)
	c.staged = nil
}

// GetOrInit returns the published binding or publishes the one build returns.
// When another writer wins the race the winner's binding is returned.
func (c *LazyCell) GetOrInit(build func() (Binding, error)) (Binding, error) {
	if b, ok := c.Load(); ok {
		return b, nil
	}

	b, err := build()
	if err != nil {
		return Binding{}, err
	}
	c.TryInitialize(b)

	published, _ := c.Load()
	return published, nil
}
