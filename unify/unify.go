// Package unify makes independently compiled modules agree on one canonical type descriptor
// per type tag.
//
// Every module calls Unify once per opted-in type, first thing in its load sequence and while
// holding the host's execution lock:
//
//	err := unify.Process().Do(func(h unify.Host) error {
//		_, err := unify.Unify[geom.Point](h)
//		return err
//	})
//
// The first call for a tag registers the module's descriptor as canonical. Later calls from
// modules built from the same source state rebind their own descriptor cell to it.
package unify

import "go.trai.ch/zerr"

// Outcome tells which branch of the protocol a Unify call took.
type Outcome int

const (
	// FirstWriter means the caller's descriptor became canonical.
	FirstWriter Outcome = iota
	// Rebound means the caller's cell was rebound to an existing canonical descriptor.
	Rebound
	// AlreadyCanonical means the caller's cell already held the canonical descriptor.
	AlreadyCanonical
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case FirstWriter:
		return "first-writer"
	case Rebound:
		return "rebound"
	case AlreadyCanonical:
		return "already-canonical"
	default:
		return "unknown"
	}
}

// Result reports the canonical descriptor a Unify call settled on.
type Result struct {
	Tag       TypeTag
	Canonical Descriptor
	Outcome   Outcome
}

// Unify settles T's descriptor cell on the canonical descriptor for T's tag.
//
// T is the value type the generated methods are declared on. The call must precede anything
// that forces T's descriptor through the host's normal path.
func Unify[T Class](h Host) (Result, error) {
	var zero T
	return unifyClass(h, zero)
}

func unifyClass(h Host, c Class) (Result, error) {
	tag := c.KindredTag()
	cell := c.KindredCell()

	reg, err := RegistryOf(h)
	if err != nil {
		return Result{}, err
	}

	if canonical, ok := reg.Lookup(tag); ok {
		if b, loaded := cell.Load(); loaded && sameDescriptor(b.Descriptor, canonical) {
			return Result{Tag: tag, Canonical: canonical, Outcome: AlreadyCanonical}, nil
		}
		if err := Rebind(cell, canonical); err != nil {
			return Result{}, zerr.With(zerr.With(err, "tag", tag.String()), "decl_path", c.KindredDeclPath())
		}
		return Result{Tag: tag, Canonical: canonical, Outcome: Rebound}, nil
	}

	b, err := cell.GetOrInit(func() (Binding, error) {
		return h.Construct(c)
	})
	if err != nil {
		return Result{}, err
	}
	if err := checkDescriptor(b.Descriptor); err != nil {
		return Result{}, zerr.With(err, "decl_path", c.KindredDeclPath())
	}

	reg.register(tag, b.Descriptor)
	return Result{Tag: tag, Canonical: b.Descriptor, Outcome: FirstWriter}, nil
}
