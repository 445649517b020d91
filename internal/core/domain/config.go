package domain

import "slices"

// Config holds the resolved kindred configuration of a workspace.
type Config struct {
	// Root is the workspace root directory the configuration was loaded from.
	Root string
	// Runtime is the module whose direct dependents receive state table entries.
	Runtime string
	// Roots lists extra root module directories, relative to Root.
	Roots []string
	// Exclude lists file extensions ignored by source fingerprints.
	Exclude []string
	// OptLevel and Flags extend the probed toolchain.
	OptLevel string
	Flags    []string
	// StatePath is the export record location relative to Root.
	StatePath string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:      root,
		Runtime:   RuntimeModulePath,
		Exclude:   DefaultExcludedExtensions(),
		StatePath: DefaultStatePath(),
	}
}

// Excluded reports whether a file extension is excluded from fingerprints.
func (c *Config) Excluded(ext string) bool {
	return slices.Contains(c.Exclude, ext)
}
