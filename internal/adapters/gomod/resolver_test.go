package gomod_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/internal/adapters/gomod"
	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func newResolver(t *testing.T) (*gomod.Resolver, *mocks.MockCommandRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return gomod.NewResolver(runner, log), runner
}

const appGoMod = `module example.com/app

go 1.25

require (
	example.com/lib v1.2.0
	example.com/local v0.0.0
	go.trai.ch/kindred v0.1.0
)

replace example.com/local => ../local
`

const appGoSum = `example.com/lib v1.1.0/go.mod h1:libmod110=
example.com/lib v1.2.0 h1:libzip120=
example.com/lib v1.2.0/go.mod h1:libmod120=
example.com/leaf v1.0.0/go.mod h1:leafmod100=
go.trai.ch/kindred v0.1.0 h1:kindredzip=
go.trai.ch/kindred v0.1.0/go.mod h1:kindredmod=
`

const appGraph = `example.com/app example.com/lib@v1.2.0
example.com/app example.com/local@v0.0.0
example.com/app go.trai.ch/kindred@v0.1.0
example.com/app go@1.25
example.com/lib@v1.2.0 example.com/leaf@v1.0.0
example.com/lib@v1.1.0 example.com/stale@v0.1.0
go.trai.ch/kindred@v0.1.0 example.com/lib@v1.1.0
go.trai.ch/kindred@v0.1.0 toolchain@go1.25.3
`

func TestResolver_Resolve(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "app")
	write(t, filepath.Join(dir, "go.mod"), appGoMod)
	write(t, filepath.Join(dir, "go.sum"), appGoSum)

	resolver, runner := newResolver(t)
	ctx := context.Background()
	runner.EXPECT().Output(ctx, dir, "go", "env", "GOWORK").Return([]byte("\n"), nil)
	runner.EXPECT().Output(ctx, dir, "go", "mod", "graph").Return([]byte(appGraph), nil)

	graph, err := resolver.Resolve(ctx, dir)
	require.NoError(t, err)

	t.Run("main module is local", func(t *testing.T) {
		app, ok := graph.Package("example.com/app")
		require.True(t, ok)
		assert.True(t, app.Local)
		assert.Equal(t, dir, app.Dir)
		assert.Empty(t, app.ID.Version)
	})

	t.Run("highest version is selected", func(t *testing.T) {
		lib, ok := graph.Package("example.com/lib")
		require.True(t, ok)
		assert.Equal(t, "v1.2.0", lib.ID.Version)
		assert.Equal(t, "h1:libzip120=", lib.Sum)
		assert.Equal(t, []string{"example.com/leaf"}, lib.Deps)
	})

	t.Run("go.mod hash fallback", func(t *testing.T) {
		leaf, ok := graph.Package("example.com/leaf")
		require.True(t, ok)
		assert.Equal(t, "h1:leafmod100=", leaf.Sum)
	})

	t.Run("directory replacement is local", func(t *testing.T) {
		local, ok := graph.Package("example.com/local")
		require.True(t, ok)
		assert.True(t, local.Local)
		assert.Equal(t, filepath.Join(base, "local"), local.Dir)
		assert.Empty(t, local.Sum)
	})

	t.Run("pseudo modules are skipped", func(t *testing.T) {
		_, ok := graph.Package("go")
		assert.False(t, ok)
		_, ok = graph.Package("toolchain")
		assert.False(t, ok)
	})

	t.Run("edges of unselected versions are dropped", func(t *testing.T) {
		closure, err := graph.Closure("example.com/app")
		require.NoError(t, err)

		var got []string
		for _, p := range closure {
			got = append(got, p.ID.Path)
		}
		assert.Equal(t, []string{
			"example.com/app",
			"example.com/leaf",
			"example.com/lib",
			"example.com/local",
			"go.trai.ch/kindred",
		}, got)
	})
}

func TestResolver_Resolve_Workspace(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "go.work"), "go 1.25\n\nuse (\n\t./app\n\t./shared\n)\n")
	write(t, filepath.Join(root, "go.work.sum"), "example.com/dep v1.0.0 h1:depzip=\n")
	write(t, filepath.Join(root, "app", "go.mod"), "module example.com/app\n\ngo 1.25\n\nrequire example.com/shared v0.3.0\n")
	write(t, filepath.Join(root, "shared", "go.mod"), "module example.com/shared\n\ngo 1.25\n\nrequire example.com/dep v1.0.0\n")

	dir := filepath.Join(root, "app")
	resolver, runner := newResolver(t)
	ctx := context.Background()
	runner.EXPECT().Output(ctx, dir, "go", "env", "GOWORK").
		Return([]byte(filepath.Join(root, "go.work")+"\n"), nil)
	runner.EXPECT().Output(ctx, dir, "go", "mod", "graph").Return([]byte(
		"example.com/app example.com/shared@v0.3.0\n"+
			"example.com/shared example.com/dep@v1.0.0\n"+
			"example.com/shared@v0.3.0 example.com/old@v0.1.0\n"), nil)

	graph, err := resolver.Resolve(ctx, dir)
	require.NoError(t, err)

	shared, ok := graph.Package("example.com/shared")
	require.True(t, ok)
	assert.True(t, shared.Local)
	assert.Equal(t, filepath.Join(root, "shared"), shared.Dir)

	dep, ok := graph.Package("example.com/dep")
	require.True(t, ok)
	assert.Equal(t, "h1:depzip=", dep.Sum)

	closure, err := graph.Closure("example.com/app")
	require.NoError(t, err)
	assert.Len(t, closure, 3)
}

func TestResolver_Resolve_MissingSumIsLeftEmpty(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "go.mod"), "module example.com/app\n\ngo 1.25\n")

	resolver, runner := newResolver(t)
	ctx := context.Background()
	runner.EXPECT().Output(ctx, dir, "go", "env", "GOWORK").Return(nil, nil)
	runner.EXPECT().Output(ctx, dir, "go", "mod", "graph").
		Return([]byte("example.com/app example.com/nosum@v1.0.0\n"), nil)

	graph, err := resolver.Resolve(ctx, dir)
	require.NoError(t, err)

	p, ok := graph.Package("example.com/nosum")
	require.True(t, ok)
	assert.Empty(t, p.Sum)
}

func TestResolver_Resolve_Errors(t *testing.T) {
	t.Run("no go.mod", func(t *testing.T) {
		resolver, _ := newResolver(t)
		_, err := resolver.Resolve(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrGoModNotFound.Error())
	})

	t.Run("graph command fails", func(t *testing.T) {
		dir := t.TempDir()
		write(t, filepath.Join(dir, "go.mod"), "module example.com/app\n")

		resolver, runner := newResolver(t)
		ctx := context.Background()
		runner.EXPECT().Output(ctx, dir, "go", "env", "GOWORK").Return(nil, nil)
		runner.EXPECT().Output(ctx, dir, "go", "mod", "graph").Return(nil, errors.New("exit status 1"))

		_, err := resolver.Resolve(ctx, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrModGraphFailed.Error())
	})

	t.Run("malformed graph", func(t *testing.T) {
		dir := t.TempDir()
		write(t, filepath.Join(dir, "go.mod"), "module example.com/app\n")

		resolver, runner := newResolver(t)
		ctx := context.Background()
		runner.EXPECT().Output(ctx, dir, "go", "env", "GOWORK").Return(nil, nil)
		runner.EXPECT().Output(ctx, dir, "go", "mod", "graph").Return([]byte("only-one-field\n"), nil)

		_, err := resolver.Resolve(ctx, dir)
		assert.ErrorIs(t, err, domain.ErrModGraphFailed)
	})
}

func TestResolver_Roots(t *testing.T) {
	t.Setenv("GOWORK", "")

	root := t.TempDir()
	write(t, filepath.Join(root, "go.work"), "go 1.25\n\nuse (\n\t./plugin-b\n\t./plugin-a\n\t./tools\n\t./indirect\n)\n")
	write(t, filepath.Join(root, "plugin-a", "go.mod"),
		"module example.com/plugin-a\n\nrequire go.trai.ch/kindred v0.1.0\n")
	write(t, filepath.Join(root, "plugin-b", "go.mod"),
		"module example.com/plugin-b\n\nrequire go.trai.ch/kindred v0.1.0\n")
	write(t, filepath.Join(root, "tools", "go.mod"), "module example.com/tools\n")
	write(t, filepath.Join(root, "indirect", "go.mod"),
		"module example.com/indirect\n\nrequire go.trai.ch/kindred v0.1.0 // indirect\n")
	write(t, filepath.Join(root, "extra", "go.mod"), "module example.com/extra\n")

	resolver, _ := newResolver(t)

	t.Run("direct dependents", func(t *testing.T) {
		roots, err := resolver.Roots(context.Background(), root, domain.RuntimeModulePath, nil)
		require.NoError(t, err)
		require.Len(t, roots, 2)
		assert.Equal(t, "example.com/plugin-a", roots[0].ID.Path)
		assert.Equal(t, filepath.Join(root, "plugin-a"), roots[0].Dir)
		assert.True(t, roots[0].Local)
		assert.Equal(t, "example.com/plugin-b", roots[1].ID.Path)
	})

	t.Run("extra roots", func(t *testing.T) {
		roots, err := resolver.Roots(context.Background(), root, domain.RuntimeModulePath, []string{"extra", "plugin-a"})
		require.NoError(t, err)
		require.Len(t, roots, 3)
		assert.Equal(t, "example.com/extra", roots[0].ID.Path)
	})

	t.Run("no dependents", func(t *testing.T) {
		_, err := resolver.Roots(context.Background(), root, "example.com/unused", nil)
		assert.ErrorIs(t, err, domain.ErrNoRoots)
	})
}

func TestResolver_Roots_SingleModule(t *testing.T) {
	t.Setenv("GOWORK", "")

	root := t.TempDir()
	write(t, filepath.Join(root, "go.mod"), "module example.com/app\n\nrequire go.trai.ch/kindred v0.1.0\n")

	resolver, _ := newResolver(t)
	roots, err := resolver.Roots(context.Background(), root, domain.RuntimeModulePath, nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, root, roots[0].Dir)
}
