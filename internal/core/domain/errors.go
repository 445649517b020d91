package domain

import "go.trai.ch/zerr"

var (
	// ErrResolution is returned when the dependency graph or a package fingerprint cannot be resolved.
	// A state table carrying this failure poisons every type tag derived from it.
	ErrResolution = zerr.New("build resolution failed")

	// ErrConfiguration is returned when a declaration's owning package matches zero or several
	// entries of the state table.
	ErrConfiguration = zerr.New("owning package does not match exactly one state table entry")

	// ErrUnknownPackage is returned when the closure walk reaches a package missing from the graph.
	ErrUnknownPackage = zerr.New("package not found in dependency graph")

	// ErrPackageAlreadyExists is returned when a package with the same path is added twice.
	ErrPackageAlreadyExists = zerr.New("package already exists")

	// ErrMissingFingerprint is returned when a package has no usable fingerprint.
	ErrMissingFingerprint = zerr.New("package has no fingerprint")

	// ErrNoTrackedSources is returned when a local package contains no tracked source file.
	ErrNoTrackedSources = zerr.New("no tracked source files")

	// ErrMalformedStateTable is returned when an exported state table cannot be parsed.
	ErrMalformedStateTable = zerr.New("malformed state table")

	// ErrMalformedDeclPath is returned when a declaration path has no owning package segment.
	ErrMalformedDeclPath = zerr.New("malformed declaration path")

	// ErrNoRoots is returned when no workspace module depends on the runtime module.
	ErrNoRoots = zerr.New("no module depends on the runtime module")

	// ErrGoModNotFound is returned when no go.mod can be found above a directory.
	ErrGoModNotFound = zerr.New("could not find go.mod")

	// ErrGoModParseFailed is returned when a go.mod or go.work file cannot be parsed.
	ErrGoModParseFailed = zerr.New("failed to parse module file")

	// ErrGoSumReadFailed is returned when go.sum cannot be read.
	ErrGoSumReadFailed = zerr.New("failed to read go.sum")

	// ErrModGraphFailed is returned when the module graph cannot be listed.
	ErrModGraphFailed = zerr.New("failed to list module graph")

	// ErrToolchainProbeFailed is returned when the go toolchain environment cannot be read.
	ErrToolchainProbeFailed = zerr.New("failed to probe go toolchain")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreReadFailed is returned when the export record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read export record")

	// ErrStoreUnmarshalFailed is returned when the export record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal export record")

	// ErrStoreMarshalFailed is returned when the export record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal export record")

	// ErrStoreWriteFailed is returned when the export record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write export record")

	// ErrNoExportRecord is returned when a reader finds no export record.
	ErrNoExportRecord = zerr.New("no export record found, run `kindred export` first")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrSourceParseFailed is returned when a Go source file cannot be parsed.
	ErrSourceParseFailed = zerr.New("failed to parse source file")

	// ErrGeneratedWriteFailed is returned when the generated tag file cannot be written.
	ErrGeneratedWriteFailed = zerr.New("failed to write generated file")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")
)
