package ports

import (
	"context"

	"go.trai.ch/kindred/internal/core/domain"
)

// ToolchainProbe defines the interface for reading the active compilation environment.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainProbe interface {
	// Probe returns the toolchain the module in dir would be built with.
	Probe(ctx context.Context, dir string) (domain.Toolchain, error)
}
