package domain

import (
	"slices"
	"strings"
)

// Toolchain describes the compilation environment a build runs in.
type Toolchain struct {
	// Target is the target platform, e.g. linux/amd64/v1.
	Target string `json:"target,omitzero"`
	// Host is the platform the toolchain runs on.
	Host string `json:"host,omitzero"`
	// OptLevel captures compiler optimisation settings (gcflags).
	OptLevel string `json:"opt_level,omitzero"`
	// Flags holds raw build flags such as GOFLAGS, CGO_ENABLED and configured extras.
	Flags []string `json:"flags,omitzero"`
	// GoVersion is the toolchain release, e.g. go1.25.3.
	GoVersion string `json:"go_version,omitzero"`
}

// Fingerprint returns a deterministic string identifying the toolchain.
// Flags are sorted so their declaration order does not matter.
func (t Toolchain) Fingerprint() string {
	flags := slices.Clone(t.Flags)
	slices.Sort(flags)

	var builder strings.Builder
	for _, part := range []struct{ key, value string }{
		{"target", t.Target},
		{"host", t.Host},
		{"opt", t.OptLevel},
		{"flags", strings.Join(flags, " ")},
		{"go", t.GoVersion},
	} {
		builder.WriteString(part.key)
		builder.WriteString("=")
		builder.WriteString(part.value)
		builder.WriteString(";")
	}
	return builder.String()
}
