// Package domain contains the core models for dependency closures, state tags and type tags.
package domain

import (
	"strconv"

	"golang.org/x/mod/module"
)

// PackageID identifies one node of a resolved dependency graph.
// Version is empty for modules that are edited in place (the main module and workspace members).
type PackageID struct {
	Path    string
	Version string
}

// String returns the path@version form used by the go command.
func (id PackageID) String() string {
	if id.Version == "" {
		return id.Path
	}
	return id.Path + "@" + id.Version
}

// Module converts the ID into a module.Version.
func (id PackageID) Module() module.Version {
	return module.Version{Path: id.Path, Version: id.Version}
}

// Package is a resolved dependency graph node.
type Package struct {
	ID PackageID

	// Dir is the source directory of a local package. Empty for fixed dependencies.
	Dir string

	// Local reports whether the package is edited in place and must be fingerprinted from its sources.
	Local bool

	// Sum is the package manager's content hash (go.sum h1: line) for fixed dependencies.
	Sum string

	// Deps lists the paths of the direct dependencies.
	Deps []string
}

// FingerprintKind tells where a fingerprint value came from.
type FingerprintKind int

const (
	// FingerprintManager is a content hash supplied by the package manager.
	FingerprintManager FingerprintKind = iota
	// FingerprintSource is derived from the newest tracked source file of a local package.
	FingerprintSource
)

// String returns a short label for the kind.
func (k FingerprintKind) String() string {
	switch k {
	case FingerprintManager:
		return "manager"
	case FingerprintSource:
		return "source"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Fingerprint is an opaque value identifying one version of one package.
type Fingerprint struct {
	Kind  FingerprintKind
	Value string
}

// String renders the fingerprint as kind:value.
func (f Fingerprint) String() string {
	return f.Kind.String() + ":" + f.Value
}

// SourceFingerprint builds the fingerprint of a local package from its newest tracked file.
// relPath must be slash separated and relative to the package directory.
func SourceFingerprint(modUnixNano int64, relPath string) Fingerprint {
	return Fingerprint{
		Kind:  FingerprintSource,
		Value: strconv.FormatInt(modUnixNano, 10) + ":" + relPath,
	}
}
