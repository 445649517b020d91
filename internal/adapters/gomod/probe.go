package gomod

import (
	"context"
	"encoding/json"
	"strings"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports"
	"go.trai.ch/zerr"
)

// archLevels maps GOARCH to the variable selecting its instruction set level.
var archLevels = map[string]string{
	"386":      "GO386",
	"amd64":    "GOAMD64",
	"arm":      "GOARM",
	"arm64":    "GOARM64",
	"mips":     "GOMIPS",
	"mipsle":   "GOMIPS",
	"mips64":   "GOMIPS64",
	"mips64le": "GOMIPS64",
	"ppc64":    "GOPPC64",
	"ppc64le":  "GOPPC64",
	"riscv64":  "GORISCV64",
	"wasm":     "GOWASM",
}

// probedVars are the go env variables that describe the toolchain.
var probedVars = []string{
	"GOOS", "GOARCH", "GOHOSTOS", "GOHOSTARCH", "GOVERSION", "GOFLAGS", "CGO_ENABLED",
	"GO386", "GOAMD64", "GOARM", "GOARM64", "GOMIPS", "GOMIPS64", "GOPPC64", "GORISCV64", "GOWASM",
}

// Probe implements ports.ToolchainProbe by reading `go env -json`.
type Probe struct {
	runner ports.CommandRunner
}

// NewProbe creates a new Probe.
func NewProbe(runner ports.CommandRunner) *Probe {
	return &Probe{runner: runner}
}

// Probe returns the target, host, version and build flags the go command would use in dir.
// Configured optimisation settings and extra flags are merged in by the caller.
func (p *Probe) Probe(ctx context.Context, dir string) (domain.Toolchain, error) {
	args := append([]string{"env", "-json"}, probedVars...)
	out, err := p.runner.Output(ctx, dir, "go", args...)
	if err != nil {
		return domain.Toolchain{}, zerr.Wrap(err, domain.ErrToolchainProbeFailed.Error())
	}

	var env map[string]string
	if err := json.Unmarshal(out, &env); err != nil {
		return domain.Toolchain{}, zerr.Wrap(err, domain.ErrToolchainProbeFailed.Error())
	}
	if env["GOOS"] == "" || env["GOARCH"] == "" {
		return domain.Toolchain{}, zerr.Wrap(domain.ErrToolchainProbeFailed, "missing GOOS or GOARCH")
	}

	target := env["GOOS"] + "/" + env["GOARCH"]
	if level := env[archLevels[env["GOARCH"]]]; level != "" {
		target += "/" + level
	}

	flags := strings.Fields(env["GOFLAGS"])
	if cgo := env["CGO_ENABLED"]; cgo != "" {
		flags = append(flags, "CGO_ENABLED="+cgo)
	}

	return domain.Toolchain{
		Target:    target,
		Host:      env["GOHOSTOS"] + "/" + env["GOHOSTARCH"],
		Flags:     flags,
		GoVersion: env["GOVERSION"],
	}, nil
}
