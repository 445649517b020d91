package ports

import "go.trai.ch/kindred/internal/core/domain"

// SourceFingerprinter defines the interface for fingerprinting packages that are edited in place.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type SourceFingerprinter interface {
	// Fingerprint returns the fingerprint of the newest tracked source file under dir.
	// Files whose extension is listed in exclude never contribute.
	Fingerprint(dir string, exclude []string) (domain.Fingerprint, error)
}
