package domain

import "path/filepath"

const (
	// StateDirName is the name of the per-workspace state directory.
	StateDirName = ".kindred"

	// StateFileName is the name of the persisted export record.
	StateFileName = "state.json"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "kindred.yaml"

	// GeneratedFileName is the name of the file holding generated type tags.
	GeneratedFileName = "kindred_gen.go"

	// RuntimeModulePath is the module whose direct dependents receive state table entries.
	RuntimeModulePath = "go.trai.ch/kindred"

	// UnifyDirective marks a type declaration as opted in to cross-module unification.
	UnifyDirective = "//kindred:unify"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default path of the export record relative to the workspace root.
// It joins .kindred and state.json.
func DefaultStatePath() string {
	return filepath.Join(StateDirName, StateFileName)
}

// DefaultExcludedExtensions lists file extensions that never contribute to a source fingerprint:
// compiled objects, archives, binaries and generated stubs.
func DefaultExcludedExtensions() []string {
	return []string{
		".a", ".o", ".so", ".dylib", ".dll", ".exe",
		".test", ".out", ".syso", ".wasm",
		".pyc", ".pyi", ".pyd",
	}
}
