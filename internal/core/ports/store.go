package ports

import "go.trai.ch/kindred/internal/core/domain"

// ExportStore defines the interface for persisting the export record between build steps.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ExportStore interface {
	// Get retrieves the export record stored at path under root.
	// Returns nil, nil if no record exists.
	Get(root, path string) (*domain.ExportRecord, error)

	// Put stores the export record at path under root.
	Put(root, path string, record *domain.ExportRecord) error
}
