package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
)

// SourceFingerprinter implements ports.SourceFingerprinter by picking the most recently
// modified tracked file of a package directory.
type SourceFingerprinter struct {
	walker *Walker
}

// NewSourceFingerprinter creates a new SourceFingerprinter.
func NewSourceFingerprinter(walker *Walker) *SourceFingerprinter {
	return &SourceFingerprinter{walker: walker}
}

// Fingerprint returns the newest tracked file under dir as mtime:relative-path.
// Ties on modification time resolve to the lexically smallest path.
func (f *SourceFingerprinter) Fingerprint(dir string, exclude []string) (domain.Fingerprint, error) {
	var (
		newestPath string
		newestTime int64
		found      bool
	)

	for path, err := range f.walker.WalkFiles(dir, []string{domain.GeneratedFileName}) {
		if err != nil {
			return domain.Fingerprint{}, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "dir", dir)
		}
		if slices.Contains(exclude, filepath.Ext(path)) {
			continue
		}

		info, err := os.Lstat(path)
		if err != nil {
			return domain.Fingerprint{}, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
		}

		mtime := info.ModTime().UnixNano()
		if !found || mtime > newestTime || (mtime == newestTime && path < newestPath) {
			newestPath, newestTime, found = path, mtime, true
		}
	}

	if !found {
		return domain.Fingerprint{}, zerr.With(zerr.Wrap(domain.ErrNoTrackedSources, ""), "dir", dir)
	}

	rel, err := filepath.Rel(dir, newestPath)
	if err != nil {
		return domain.Fingerprint{}, zerr.With(zerr.Wrap(err, "failed to resolve relative path"), "path", newestPath)
	}
	return domain.SourceFingerprint(newestTime, filepath.ToSlash(rel)), nil
}
