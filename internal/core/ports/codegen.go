package ports

import "go.trai.ch/kindred/internal/core/domain"

// CodeGenerator defines the interface for finding opted-in types and writing their tags.
//
//go:generate mockgen -source=codegen.go -destination=mocks/mock_codegen.go -package=mocks
type CodeGenerator interface {
	// Scan parses the package in dir and returns its opted-in declarations.
	Scan(dir string) (*domain.DeclPackage, error)
	// Write renders the generated file for pkg and writes it into the package directory.
	// With no tagged declarations a stale generated file is removed instead.
	// It returns the path of the generated file.
	Write(pkg *domain.DeclPackage, tagged []domain.TaggedDecl, meta domain.GenerateMeta) (string, error)
}
