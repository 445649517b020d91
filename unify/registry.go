package unify

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// RegistrySlot is the well-known host slot holding the shared Registry.
const RegistrySlot = "go.trai.ch/kindred/unify.registry"

// Registry maps type tags to their canonical descriptors.
//
// The first descriptor stored under a tag stays canonical for the life of the process;
// entries are never replaced or evicted. The registry has no locking of its own: it is only
// touched while the host's execution lock is held.
type Registry struct {
	entries map[TypeTag]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[TypeTag]Descriptor)}
}

// Lookup returns the canonical descriptor registered under tag.
func (r *Registry) Lookup(tag TypeTag) (Descriptor, bool) {
	d, ok := r.entries[tag]
	return d, ok
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries yields every registered tag and its canonical descriptor in tag order.
func (r *Registry) Entries() iter.Seq2[TypeTag, Descriptor] {
	return func(yield func(TypeTag, Descriptor) bool) {
		for _, tag := range slices.Sorted(maps.Keys(r.entries)) {
			if !yield(tag, r.entries[tag]) {
				return
			}
		}
	}
}

// register stores d under tag unless the tag is taken. It reports whether d became canonical.
func (r *Registry) register(tag TypeTag, d Descriptor) bool {
	if _, ok := r.entries[tag]; ok {
		return false
	}
	r.entries[tag] = d
	return true
}

// RegistryOf returns the registry stored in the host's shared slot, creating an empty one
// when the slot is absent.
func RegistryOf(h Host) (*Registry, error) {
	v, ok := h.Slot(RegistrySlot)
	if !ok {
		reg := NewRegistry()
		if err := h.SetSlot(RegistrySlot, reg); err != nil {
			return nil, err
		}
		return reg, nil
	}

	reg, ok := v.(*Registry)
	if !ok {
		err := zerr.With(zerr.Wrap(ErrSlotConflict, ""), "slot", RegistrySlot)
		return nil, zerr.With(err, "type", fmt.Sprintf("%T", v))
	}
	return reg, nil
}
