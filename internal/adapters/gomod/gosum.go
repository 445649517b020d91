package gomod

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
)

// goModSuffix marks go.sum lines that hash only a module's go.mod file.
const goModSuffix = "/go.mod"

// sums holds go.sum hashes keyed by path@version.
type sums struct {
	zip   map[string]string
	goMod map[string]string
}

func newSums() *sums {
	return &sums{
		zip:   make(map[string]string),
		goMod: make(map[string]string),
	}
}

// load merges the go.sum file at path. A missing file is not an error.
func (s *sums) load(path string) error {
	//nolint:gosec // Path is derived from a module directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrGoSumReadFailed.Error()), "path", path)
	}
	s.parse(data)
	return nil
}

func (s *sums) parse(data []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			continue
		}
		path, version, hash := fields[0], fields[1], fields[2]
		if v, ok := strings.CutSuffix(version, goModSuffix); ok {
			s.goMod[path+"@"+v] = hash
			continue
		}
		s.zip[path+"@"+version] = hash
	}
}

// lookup returns the content hash of a module version, preferring the module zip hash
// and falling back to the go.mod hash kept for modules pruned from the build list.
func (s *sums) lookup(path, version string) string {
	key := path + "@" + version
	if h, ok := s.zip[key]; ok {
		return h
	}
	return s.goMod[key]
}
