package codegen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/internal/adapters/codegen"
	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

const pointSource = `package geom

// Point is a position on the plane.
//
//kindred:unify
type Point struct {
	X int
	Y int
}

// Plain is not opted in.
type Plain struct{}

type (
	// Box holds a keyed value.
	//kindred:unify
	Box[K comparable, V any] struct {
		Key   K
		Value V
	}

	//kindred:unify
	Label string
)
`

func scan(t *testing.T, source string) *domain.DeclPackage {
	t.Helper()
	mod := t.TempDir()
	write(t, filepath.Join(mod, "go.mod"), "module example.com/shapes\n\ngo 1.25\n")
	write(t, filepath.Join(mod, "geom", "point.go"), source)

	pkg, err := codegen.NewGenerator().Scan(filepath.Join(mod, "geom"))
	require.NoError(t, err)
	return pkg
}

func TestGenerator_Scan(t *testing.T) {
	pkg := scan(t, pointSource)

	assert.Equal(t, "geom", pkg.Name)
	assert.Equal(t, "example.com/shapes", pkg.ModulePath)
	assert.Equal(t, "geom", pkg.RelDir)

	require.Len(t, pkg.Decls, 3)
	assert.Equal(t, "Box", pkg.Decls[0].Name)
	assert.Equal(t, "example.com/shapes::geom::Box", pkg.Decls[0].DeclPath)
	assert.Equal(t, []string{"K", "V"}, pkg.Decls[0].TypeParams)
	assert.Equal(t, "Label", pkg.Decls[1].Name)
	assert.Equal(t, "Point", pkg.Decls[2].Name)
	assert.Empty(t, pkg.Decls[2].TypeParams)
}

func TestGenerator_Scan_ModuleRoot(t *testing.T) {
	mod := t.TempDir()
	write(t, filepath.Join(mod, "go.mod"), "module example.com/shapes\n")
	write(t, filepath.Join(mod, "shapes.go"), "package shapes\n\n//kindred:unify\ntype Circle struct{ R float64 }\n")
	write(t, filepath.Join(mod, "shapes_test.go"), "package shapes\n\n//kindred:unify\ntype Fixture struct{}\n")
	write(t, filepath.Join(mod, domain.GeneratedFileName), "package shapes\n\n//kindred:unify\ntype Stale struct{}\n")

	pkg, err := codegen.NewGenerator().Scan(mod)
	require.NoError(t, err)

	assert.Equal(t, ".", pkg.RelDir)
	require.Len(t, pkg.Decls, 1)
	assert.Equal(t, "example.com/shapes::.::Circle", pkg.Decls[0].DeclPath)
}

func TestGenerator_Scan_StructuralHash(t *testing.T) {
	base := scan(t, `package geom

//kindred:unify
type Point struct {
	X int
	Y int
}
`).Decls[0].Structural

	tests := []struct {
		name    string
		source  string
		changed bool
	}{
		{
			name: "comments and layout",
			source: `package geom

// Point moved its comments around.
//kindred:unify
type Point struct { X int // horizontal
	/* vertical */ Y int }
`,
			changed: false,
		},
		{
			name:    "single line",
			source:  "package geom\n\n//kindred:unify\ntype Point struct{ X int; Y int }\n",
			changed: false,
		},
		{
			name:    "reordered fields",
			source:  "package geom\n\n//kindred:unify\ntype Point struct {\n\tY int\n\tX int\n}\n",
			changed: true,
		},
		{
			name:    "renamed field",
			source:  "package geom\n\n//kindred:unify\ntype Point struct {\n\tX int\n\tZ int\n}\n",
			changed: true,
		},
		{
			name:    "added field",
			source:  "package geom\n\n//kindred:unify\ntype Point struct {\n\tX int\n\tY int\n\tZ int\n}\n",
			changed: true,
		},
		{
			name:    "struct tag",
			source:  "package geom\n\n//kindred:unify\ntype Point struct {\n\tX int `json:\"x\"`\n\tY int\n}\n",
			changed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan(t, tt.source).Decls[0].Structural
			if tt.changed {
				assert.NotEqual(t, base, got)
			} else {
				assert.Equal(t, base, got)
			}
		})
	}
}

func TestGenerator_Scan_Errors(t *testing.T) {
	t.Run("no module", func(t *testing.T) {
		dir := t.TempDir()
		write(t, filepath.Join(dir, "a.go"), "package a\n")
		_, err := codegen.NewGenerator().Scan(dir)
		if err == nil {
			t.Skip("a go.mod exists above the temporary directory")
		}
		assert.ErrorIs(t, err, domain.ErrGoModNotFound)
	})

	t.Run("syntax error", func(t *testing.T) {
		mod := t.TempDir()
		write(t, filepath.Join(mod, "go.mod"), "module example.com/broken\n")
		write(t, filepath.Join(mod, "broken.go"), "package broken\n\ntype T struct {\n")
		_, err := codegen.NewGenerator().Scan(mod)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrSourceParseFailed.Error())
	})

	tests := []struct {
		name string
		decl string
		typ  string
	}{
		{name: "interface", decl: "type Shape interface{ Area() float64 }", typ: "Shape"},
		{name: "alias", decl: "type Alias = point", typ: "Alias"},
		{name: "pointer", decl: "type Ref *point", typ: "Ref"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := t.TempDir()
			write(t, filepath.Join(mod, "go.mod"), "module example.com/shapes\n")
			write(t, filepath.Join(mod, "shapes.go"),
				"package shapes\n\ntype point struct{ X int }\n\n//kindred:unify\n"+tt.decl+"\n")

			_, err := codegen.NewGenerator().Scan(mod)
			require.ErrorIs(t, err, domain.ErrConfiguration)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok)
			assert.Equal(t, tt.typ, zErr.Metadata()["type"])
			assert.Equal(t, "example.com/shapes::.::"+tt.typ, zErr.Metadata()["decl_path"])
		})
	}
}

func renderFixture() (*domain.DeclPackage, []domain.TaggedDecl, domain.GenerateMeta) {
	pkg := &domain.DeclPackage{Name: "geom", ModulePath: "example.com/shapes", RelDir: "geom"}
	tagged := []domain.TaggedDecl{
		{
			TypeDecl: domain.TypeDecl{Name: "Box", DeclPath: "example.com/shapes::geom::Box", TypeParams: []string{"K", "V"}},
			Tag:      0x1,
		},
		{
			TypeDecl: domain.TypeDecl{Name: "Point", DeclPath: "example.com/shapes::geom::Point"},
			Tag:      0x9e3779b97f4a7c15,
		},
	}
	meta := domain.GenerateMeta{
		OutDir:    "/work/.kindred",
		Toolchain: "target=linux/amd64;host=linux/amd64;opt=;flags=;go=go1.25.3;",
	}
	return pkg, tagged, meta
}

func TestRender(t *testing.T) {
	src, err := codegen.Render(renderFixture())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "render", src)
}

func TestGenerator_Write(t *testing.T) {
	pkg, tagged, meta := renderFixture()
	pkg.Dir = t.TempDir()
	gen := codegen.NewGenerator()

	path, err := gen.Write(pkg, tagged, meta)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pkg.Dir, domain.GeneratedFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "const kindredTagPoint unify.TypeTag = 0x9e3779b97f4a7c15")

	t.Run("stale file is removed", func(t *testing.T) {
		_, err := gen.Write(pkg, nil, meta)
		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		_, err = gen.Write(pkg, nil, meta)
		require.NoError(t, err, "removing a missing file is not an error")
	})
}
