package codegen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
)

// Generator implements ports.CodeGenerator.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Write renders and writes the generated file into the package directory.
func (g *Generator) Write(pkg *domain.DeclPackage, tagged []domain.TaggedDecl, meta domain.GenerateMeta) (string, error) {
	path := filepath.Join(pkg.Dir, domain.GeneratedFileName)

	if len(tagged) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrGeneratedWriteFailed.Error()), "path", path)
		}
		return path, nil
	}

	src, err := Render(pkg, tagged, meta)
	if err != nil {
		return "", err
	}

	//nolint:gosec // Generated sources are world readable like the rest of the package
	if err := os.WriteFile(path, src, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrGeneratedWriteFailed.Error()), "path", path)
	}
	return path, nil
}
