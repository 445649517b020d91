package unify

import (
	"fmt"
	"reflect"

	"go.trai.ch/zerr"
)

// Rebind points cell at the canonical descriptor.
//
// A cell already holding canonical is left alone. A cell holding a different published
// descriptor means the type was exposed before Unify ran, so the rebind is refused with
// ErrProtocolMisuse. Otherwise the cell is force-overwritten with a fresh binding around
// canonical and any staged auxiliary state is discarded.
func Rebind(cell Cell, canonical Descriptor) error {
	if err := checkDescriptor(canonical); err != nil {
		return err
	}

	if b, ok := cell.Load(); ok {
		if sameDescriptor(b.Descriptor, canonical) {
			return nil
		}
		return zerr.With(zerr.Wrap(ErrProtocolMisuse, ""), "descriptor", fmt.Sprintf("%v", b.Descriptor))
	}

	cell.ForceRebind(Binding{Descriptor: canonical, Aux: make(map[string]any)})
	return nil
}

func checkDescriptor(d Descriptor) error {
	if d == nil {
		return zerr.Wrap(ErrNilDescriptor, "")
	}
	if !reflect.ValueOf(d).Comparable() {
		return zerr.With(zerr.Wrap(ErrNotComparable, ""), "type", fmt.Sprintf("%T", d))
	}
	return nil
}

func sameDescriptor(a, b Descriptor) bool {
	if a == nil || b == nil || !reflect.ValueOf(a).Comparable() {
		return a == nil && b == nil
	}
	return a == b
}
