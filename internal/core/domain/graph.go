package domain

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
	"golang.org/x/mod/module"
)

// Graph is a resolved package dependency graph with exactly one selected version per package path.
type Graph struct {
	packages map[string]Package
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		packages: make(map[string]Package),
	}
}

// AddPackage adds a package to the graph.
// It returns an error if a package with the same path already exists.
func (g *Graph) AddPackage(p *Package) error {
	if _, exists := g.packages[p.ID.Path]; exists {
		return zerr.With(zerr.Wrap(ErrPackageAlreadyExists, ""), "package", p.ID.Path)
	}
	g.packages[p.ID.Path] = *p
	return nil
}

// AddEdge records that from directly depends on to. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) error {
	p, ok := g.packages[from]
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnknownPackage, ""), "package", from)
	}
	if slices.Contains(p.Deps, to) {
		return nil
	}
	p.Deps = append(p.Deps, to)
	g.packages[from] = p
	return nil
}

// Package returns the package with the given path.
func (g *Graph) Package(path string) (Package, bool) {
	p, ok := g.packages[path]
	return p, ok
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return len(g.packages)
}

// Packages yields all packages in canonical order.
func (g *Graph) Packages() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		for _, path := range slices.Sorted(maps.Keys(g.packages)) {
			if !yield(g.packages[path]) {
				return
			}
		}
	}
}

// Closure returns root and every package reachable from it, in canonical order.
//
// The walk keeps an unresolved frontier and a resolved set: each round unions the direct
// dependencies of the frontier, subtracts what is already resolved and repeats until the
// frontier is empty. The result is sorted by path and version, so discovery order never
// leaks into anything hashed from it.
func (g *Graph) Closure(root string) ([]Package, error) {
	if _, ok := g.packages[root]; !ok {
		return nil, zerr.With(zerr.Wrap(ErrUnknownPackage, ""), "package", root)
	}

	resolved := make(map[string]struct{})
	unresolved := map[string]struct{}{root: {}}

	for len(unresolved) > 0 {
		next := make(map[string]struct{})
		for path := range unresolved {
			resolved[path] = struct{}{}
			p, ok := g.packages[path]
			if !ok {
				return nil, zerr.With(zerr.Wrap(ErrUnknownPackage, ""), "package", path)
			}
			for _, dep := range p.Deps {
				next[dep] = struct{}{}
			}
		}
		for path := range resolved {
			delete(next, path)
		}
		unresolved = next
	}

	closure := make([]Package, 0, len(resolved))
	versions := make([]module.Version, 0, len(resolved))
	for path := range resolved {
		p := g.packages[path]
		closure = append(closure, p)
		versions = append(versions, p.ID.Module())
	}

	module.Sort(versions)
	order := make(map[string]int, len(versions))
	for i, v := range versions {
		order[v.Path] = i
	}
	slices.SortFunc(closure, func(a, b Package) int {
		return order[a.ID.Path] - order[b.ID.Path]
	})

	return closure, nil
}
