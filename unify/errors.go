package unify

import "go.trai.ch/zerr"

var (
	// ErrProtocolMisuse is returned when Unify runs after the type's descriptor cell was already
	// initialized with a different descriptor. The module load cannot continue.
	ErrProtocolMisuse = zerr.New("type descriptor already initialized before unify")

	// ErrSlotConflict is returned when a shared host slot holds a value of an unexpected kind
	// or is written twice.
	ErrSlotConflict = zerr.New("shared slot conflict")

	// ErrNotComparable is returned when a host constructs a descriptor that cannot be used as
	// an identity.
	ErrNotComparable = zerr.New("descriptor is not comparable")

	// ErrNilDescriptor is returned when a host construction path yields no descriptor.
	ErrNilDescriptor = zerr.New("construction produced no descriptor")

	// ErrTypeMismatch is returned when an instance fails a descriptor's type check.
	ErrTypeMismatch = zerr.New("instance does not belong to type")
)
