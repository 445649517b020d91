package domain

// TypeDecl is a type declaration opted in to cross-module unification.
type TypeDecl struct {
	// Name is the declared type name.
	Name string
	// DeclPath is the fully qualified declaration path.
	DeclPath string
	// TypeParams lists the type parameter names of a generic declaration.
	TypeParams []string
	// Structural is the hash of the declaration's normalized text.
	Structural uint64
}

// DeclPackage is one Go package scanned for opted-in declarations.
type DeclPackage struct {
	// Name is the package clause name.
	Name string
	// Dir is the package directory.
	Dir string
	// ModulePath is the path of the module owning the package.
	ModulePath string
	// RelDir is the slash separated package directory relative to the module root, "." for the root.
	RelDir string
	// Decls lists the opted-in declarations sorted by name.
	Decls []TypeDecl
}

// TaggedDecl pairs a declaration with its derived type tag.
type TaggedDecl struct {
	TypeDecl
	Tag TypeTag
}

// GenerateMeta carries the build-wide values baked into generated files next to the tags.
type GenerateMeta struct {
	// OutDir is the build output directory the state table was exported to.
	OutDir string
	// Toolchain is the toolchain fingerprint string.
	Toolchain string
}
