package ports

import "go.trai.ch/kindred/internal/core/domain"

// ConfigLoader defines the interface for loading the kindred configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration of the workspace containing cwd.
	// A missing config file yields the defaults rooted at the discovered workspace root.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing go.work, or else the nearest go.mod.
	DiscoverRoot(cwd string) (string, error)
}
