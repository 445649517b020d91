package unify

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

// Host is the runtime every loaded module shares.
//
// Callers hold the host's global execution lock for the duration of a Unify call, so
// implementations need not synchronise slot access themselves.
type Host interface {
	// Slot returns the value stored in a named shared slot.
	Slot(name string) (any, bool)
	// SetSlot stores a value in an empty named shared slot.
	SetSlot(name string, value any) error
	// Construct runs the host's normal one-time construction path for a tagged type.
	Construct(t Tagged) (Binding, error)
}

// declPathSeparator separates module, package directory and type name in a declaration path.
const declPathSeparator = "::"

// Aux keys the ProcessHost attaches to every binding it constructs.
const (
	AuxDeclPath = "decl_path"
	AuxModule   = "module"
)

// TypeObject is the descriptor built by ProcessHost.
type TypeObject struct {
	// Name is the declared type name.
	Name string
	// Tag is the type tag the descriptor was built for.
	Tag TypeTag
	// Module is the owning module path of the declaration.
	Module string
}

// Check is the host's type check: it reports whether the instance was built against o.
func (o *TypeObject) Check(i Instance) bool {
	return i.descriptor == Descriptor(o)
}

// Assert is Check reporting a failure as ErrTypeMismatch.
func (o *TypeObject) Assert(i Instance) error {
	if o.Check(i) {
		return nil
	}
	err := zerr.With(zerr.Wrap(ErrTypeMismatch, ""), "type", o.Name)
	return zerr.With(err, "tag", o.Tag.String())
}

// Instance is a value stamped with the descriptor its type's cell held when it was built.
type Instance struct {
	descriptor Descriptor
	Value      any
}

// Descriptor returns the descriptor the instance was built against.
func (i Instance) Descriptor() Descriptor {
	return i.descriptor
}

// ProcessHost is an in-process Host with a global execution lock.
type ProcessHost struct {
	mu    sync.Mutex
	slots map[string]any
}

var _ Host = (*ProcessHost)(nil)

var (
	processOnce sync.Once
	process     *ProcessHost
)

// Process returns the host shared by every module loaded into this process.
func Process() *ProcessHost {
	processOnce.Do(func() {
		process = NewProcessHost()
	})
	return process
}

// NewProcessHost creates an isolated host with no slots.
func NewProcessHost() *ProcessHost {
	return &ProcessHost{slots: make(map[string]any)}
}

// Do runs fn while holding the host's global execution lock.
func (h *ProcessHost) Do(fn func(Host) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h)
}

// Slot returns the value stored in a named slot.
func (h *ProcessHost) Slot(name string) (any, bool) {
	v, ok := h.slots[name]
	return v, ok
}

// SetSlot stores a value in an empty slot.
func (h *ProcessHost) SetSlot(name string, value any) error {
	if _, ok := h.slots[name]; ok {
		return zerr.With(zerr.Wrap(ErrSlotConflict, ""), "slot", name)
	}
	h.slots[name] = value
	return nil
}

// Slots lists the names of all occupied slots in sorted order.
// Like Slot it does not lock: call it inside Do when other goroutines may be unifying.
func (h *ProcessHost) Slots() []string {
	return slices.Sorted(maps.Keys(h.slots))
}

// Construct builds a fresh TypeObject for t.
func (h *ProcessHost) Construct(t Tagged) (Binding, error) {
	declPath := t.KindredDeclPath()
	module, _, _ := strings.Cut(declPath, declPathSeparator)
	name := declPath
	if i := strings.LastIndex(declPath, declPathSeparator); i >= 0 {
		name = declPath[i+len(declPathSeparator):]
	}

	return Binding{
		Descriptor: &TypeObject{Name: name, Tag: t.KindredTag(), Module: module},
		Aux: map[string]any{
			AuxDeclPath: declPath,
			AuxModule:   module,
		},
	}, nil
}

// New builds an instance of T bound to whatever descriptor T's cell currently holds,
// running the host's construction path if the cell is still empty.
func New[T Class](h Host, value T) (Instance, error) {
	b, err := value.KindredCell().GetOrInit(func() (Binding, error) {
		return h.Construct(value)
	})
	if err != nil {
		return Instance{}, err
	}
	return Instance{descriptor: b.Descriptor, Value: value}, nil
}
