package domain

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// DeclPathSeparator separates the segments of a declaration path.
const DeclPathSeparator = "::"

// TypeTag identifies one declaration compiled from one source state with one toolchain.
type TypeTag uint64

// String renders the tag as a fixed width hex literal.
func (t TypeTag) String() string {
	return fmt.Sprintf("0x%016x", uint64(t))
}

// DeclPath builds the fully qualified declaration path of a type:
// <module path>::<package dir relative to the module>::<type name>.
// The module root package uses "." as its directory.
func DeclPath(modulePath, pkgDir, typeName string) string {
	if pkgDir == "" {
		pkgDir = "."
	}
	return strings.Join([]string{modulePath, pkgDir, typeName}, DeclPathSeparator)
}

// OwnerOf returns the owning package of a declaration path: its leading segment.
func OwnerOf(declPath string) (string, error) {
	owner, _, ok := strings.Cut(declPath, DeclPathSeparator)
	if !ok || owner == "" {
		return "", zerr.With(zerr.Wrap(ErrMalformedDeclPath, ""), "decl_path", declPath)
	}
	return owner, nil
}

// StructuralHash hashes the normalized text of a type declaration.
func StructuralHash(normalized string) uint64 {
	return xxhash.Sum64String(normalized)
}

// DeriveTypeTag combines the owning package's state tag, the declaration's structural hash
// and the toolchain fingerprint into the tag baked into generated code.
func DeriveTypeTag(table StateTable, declPath string, structural uint64, toolchain string) (TypeTag, error) {
	owner, err := OwnerOf(declPath)
	if err != nil {
		return 0, err
	}

	state, err := table.Lookup(owner)
	if err != nil {
		return 0, zerr.With(err, "decl_path", declPath)
	}

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(state))
	binary.LittleEndian.PutUint64(buf[8:], structural)

	h := xxhash.New()
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(toolchain)
	return TypeTag(h.Sum64()), nil
}
