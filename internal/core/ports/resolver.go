package ports

import (
	"context"

	"go.trai.ch/kindred/internal/core/domain"
)

// GraphResolver defines the interface for asking the package manager for resolved dependency graphs.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type GraphResolver interface {
	// Roots returns the workspace modules under root whose manifests directly require runtime,
	// followed by the modules in the extra directories (relative to root).
	Roots(ctx context.Context, root, runtime string, extra []string) ([]domain.Package, error)

	// Resolve returns the resolved dependency graph of the module in dir, with one selected
	// version per package, local packages marked, and manager fingerprints attached.
	Resolve(ctx context.Context, dir string) (*domain.Graph, error)
}
