package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
)

func pkg(path, version string, deps ...string) *domain.Package {
	return &domain.Package{
		ID:   domain.PackageID{Path: path, Version: version},
		Deps: deps,
	}
}

func paths(closure []domain.Package) []string {
	out := make([]string, 0, len(closure))
	for _, p := range closure {
		out = append(out, p.ID.Path)
	}
	return out
}

func TestGraph_AddPackage(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddPackage(pkg("example.com/a", "")))

	err := g.AddPackage(pkg("example.com/a", "v1.0.0"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPackageAlreadyExists))

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "example.com/a", zErr.Metadata()["package"])
}

func TestGraph_AddEdge(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddPackage(pkg("example.com/a", "")))
	require.NoError(t, g.AddPackage(pkg("example.com/b", "v1.0.0")))

	require.NoError(t, g.AddEdge("example.com/a", "example.com/b"))
	require.NoError(t, g.AddEdge("example.com/a", "example.com/b"))

	a, ok := g.Package("example.com/a")
	require.True(t, ok)
	assert.Equal(t, []string{"example.com/b"}, a.Deps)

	err := g.AddEdge("example.com/missing", "example.com/b")
	assert.ErrorIs(t, err, domain.ErrUnknownPackage)
}

func TestGraph_Closure(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddPackage(pkg("example.com/root", "", "golang.org/x/sync", "example.com/b")))
	require.NoError(t, g.AddPackage(pkg("example.com/b", "v1.2.0", "example.com/c")))
	require.NoError(t, g.AddPackage(pkg("example.com/c", "v0.1.0", "example.com/b")))
	require.NoError(t, g.AddPackage(pkg("golang.org/x/sync", "v0.19.0")))
	require.NoError(t, g.AddPackage(pkg("example.com/unrelated", "v1.0.0")))

	closure, err := g.Closure("example.com/root")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"example.com/b",
		"example.com/c",
		"example.com/root",
		"golang.org/x/sync",
	}, paths(closure))
}

func TestGraph_Closure_OrderIsIndependentOfInsertion(t *testing.T) {
	build := func(order []string) *domain.Graph {
		all := map[string]*domain.Package{
			"example.com/root": pkg("example.com/root", "", "example.com/z", "example.com/a"),
			"example.com/z":    pkg("example.com/z", "v1.0.0", "example.com/m"),
			"example.com/a":    pkg("example.com/a", "v1.0.0", "example.com/m"),
			"example.com/m":    pkg("example.com/m", "v2.0.0"),
		}
		g := domain.NewGraph()
		for _, p := range order {
			require.NoError(t, g.AddPackage(all[p]))
		}
		return g
	}

	first, err := build([]string{"example.com/root", "example.com/z", "example.com/a", "example.com/m"}).
		Closure("example.com/root")
	require.NoError(t, err)
	second, err := build([]string{"example.com/m", "example.com/a", "example.com/z", "example.com/root"}).
		Closure("example.com/root")
	require.NoError(t, err)

	assert.Equal(t, paths(first), paths(second))
}

func TestGraph_Closure_LeafRoot(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddPackage(pkg("example.com/root", "")))

	closure, err := g.Closure("example.com/root")
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com/root"}, paths(closure))
}

func TestGraph_Closure_Errors(t *testing.T) {
	t.Run("unknown root", func(t *testing.T) {
		g := domain.NewGraph()
		_, err := g.Closure("example.com/root")
		assert.ErrorIs(t, err, domain.ErrUnknownPackage)
	})

	t.Run("dangling edge", func(t *testing.T) {
		g := domain.NewGraph()
		require.NoError(t, g.AddPackage(pkg("example.com/root", "", "example.com/gone")))

		_, err := g.Closure("example.com/root")
		require.ErrorIs(t, err, domain.ErrUnknownPackage)

		zErr, ok := err.(*zerr.Error)
		require.True(t, ok)
		assert.Equal(t, "example.com/gone", zErr.Metadata()["package"])
	})
}

func TestGraph_Packages(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddPackage(pkg("example.com/z", "v1.0.0")))
	require.NoError(t, g.AddPackage(pkg("example.com/a", "v1.0.0")))

	var got []string
	for p := range g.Packages() {
		got = append(got, p.ID.String())
	}
	assert.Equal(t, []string{"example.com/a@v1.0.0", "example.com/z@v1.0.0"}, got)
	assert.Equal(t, 2, g.Len())
}
