package unify

import "fmt"

// TypeTag identifies one declaration compiled from one source state with one toolchain.
// Generated code bakes it in as a constant.
type TypeTag uint64

// String renders the tag as a fixed width hex literal.
func (t TypeTag) String() string {
	return fmt.Sprintf("0x%016x", uint64(t))
}

// Tagged is implemented by generated code for every type opted in with //kindred:unify.
type Tagged interface {
	// KindredTag returns the compile time type tag.
	KindredTag() TypeTag
	// KindredDeclPath returns the fully qualified declaration path of the type.
	KindredDeclPath() string
}

// Class is a tagged type that owns a lazy descriptor cell in its compiled module.
type Class interface {
	Tagged
	// KindredCell returns the module local cell holding the type's descriptor.
	KindredCell() Cell
}
