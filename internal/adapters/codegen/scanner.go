// Package codegen finds type declarations opted in with //kindred:unify and writes their tags.
package codegen

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/modfile"
)

// Scan parses the non-test Go files in dir and returns the declarations carrying the directive.
func (g *Generator) Scan(dir string) (*domain.DeclPackage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve package directory"), "dir", dir)
	}

	modDir, modPath, err := owningModule(abs)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(modDir, abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to relativize package directory"), "dir", abs)
	}

	pkg := &domain.DeclPackage{
		Dir:        abs,
		ModulePath: modPath,
		RelDir:     filepath.ToSlash(rel),
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceParseFailed.Error()), "dir", abs)
	}

	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isSource(name) {
			continue
		}

		path := filepath.Join(abs, name)
		//nolint:gosec // Path comes from listing the package directory
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceParseFailed.Error()), "path", path)
		}
		file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceParseFailed.Error()), "path", path)
		}
		if pkg.Name == "" {
			pkg.Name = file.Name.Name
		}

		decls, err := optedIn(fset, file, src, pkg)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		pkg.Decls = append(pkg.Decls, decls...)
	}

	slices.SortFunc(pkg.Decls, func(a, b domain.TypeDecl) int {
		return strings.Compare(a.Name, b.Name)
	})
	return pkg, nil
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		name != domain.GeneratedFileName
}

// owningModule walks up from dir to the nearest go.mod and returns its directory and module path.
func owningModule(dir string) (string, string, error) {
	for current := dir; ; {
		path := filepath.Join(current, "go.mod")
		//nolint:gosec // Path is derived from the package directory
		data, err := os.ReadFile(path)
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", "", zerr.With(zerr.Wrap(domain.ErrGoModParseFailed, "missing module directive"), "path", path)
			}
			return current, modPath, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", "", zerr.With(zerr.Wrap(domain.ErrGoModNotFound, ""), "dir", dir)
		}
		current = parent
	}
}

func optedIn(fset *token.FileSet, file *ast.File, src []byte, pkg *domain.DeclPackage) ([]domain.TypeDecl, error) {
	var decls []domain.TypeDecl
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && !gen.Lparen.IsValid() {
				doc = gen.Doc
			}
			if !hasDirective(doc) {
				continue
			}
			declPath := domain.DeclPath(pkg.ModulePath, pkg.RelDir, ts.Name.Name)
			if reason := unsupported(ts); reason != "" {
				err := zerr.With(zerr.Wrap(domain.ErrConfiguration, reason), "type", ts.Name.Name)
				return nil, zerr.With(err, "decl_path", declPath)
			}

			start := fset.Position(ts.Pos()).Offset
			end := fset.Position(ts.End()).Offset
			normalized, err := normalize(src[start:end])
			if err != nil {
				return nil, zerr.With(err, "type", ts.Name.Name)
			}

			decls = append(decls, domain.TypeDecl{
				Name:       ts.Name.Name,
				DeclPath:   declPath,
				TypeParams: typeParams(ts),
				Structural: domain.StructuralHash(normalized),
			})
		}
	}
	return decls, nil
}

// unsupported reports why a declaration cannot carry the generated methods, or "".
func unsupported(ts *ast.TypeSpec) string {
	if ts.Assign.IsValid() {
		return "type alias cannot be opted in"
	}
	switch ts.Type.(type) {
	case *ast.InterfaceType:
		return "interface type cannot be opted in"
	case *ast.StarExpr:
		return "pointer type cannot be opted in"
	}
	return ""
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(c.Text)
		if text == domain.UnifyDirective || strings.HasPrefix(text, domain.UnifyDirective+" ") {
			return true
		}
	}
	return false
}

func typeParams(ts *ast.TypeSpec) []string {
	if ts.TypeParams == nil {
		return nil
	}
	var names []string
	for _, field := range ts.TypeParams.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// normalize renders a declaration as its token stream: comments and layout are dropped,
// field names, field order and struct tags are kept. Automatic and explicit semicolons are
// treated alike and dropped before closing brackets.
func normalize(src []byte) (string, error) {
	var (
		s       scanner.Scanner
		errs    scanner.ErrorList
		tokens  []string
		pending bool
	)
	file := token.NewFileSet().AddFile("", -1, len(src))
	s.Init(file, src, func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)

	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON {
			pending = len(tokens) > 0
			continue
		}
		if pending && tok != token.RBRACE && tok != token.RPAREN && tok != token.RBRACK {
			tokens = append(tokens, ";")
		}
		pending = false

		if lit != "" {
			tokens = append(tokens, lit)
		} else {
			tokens = append(tokens, tok.String())
		}
	}

	if err := errs.Err(); err != nil {
		return "", zerr.Wrap(err, domain.ErrSourceParseFailed.Error())
	}
	return strings.Join(tokens, " "), nil
}
