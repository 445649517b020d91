package gomod

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// pseudoModules are graph nodes the go command adds for version requirements, not real modules.
var pseudoModules = []string{"go", "toolchain"}

// Resolver implements ports.GraphResolver using the go command and module files.
type Resolver struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(runner ports.CommandRunner, logger ports.Logger) *Resolver {
	return &Resolver{
		runner: runner,
		logger: logger,
	}
}

// Roots returns the workspace modules whose go.mod directly requires runtime, followed by
// the modules found in the extra directories. Results are sorted by module path.
func (r *Resolver) Roots(_ context.Context, root, runtime string, extra []string) ([]domain.Package, error) {
	candidates, err := localModules(root)
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]domain.Package)
	add := func(m member) {
		if _, ok := byPath[m.Path]; ok {
			return
		}
		byPath[m.Path] = domain.Package{
			ID:    domain.PackageID{Path: m.Path},
			Dir:   m.Dir,
			Local: true,
		}
	}

	for _, m := range candidates {
		if m.Path != runtime && requiresDirectly(m.File, runtime) {
			add(m)
		}
	}
	for _, rel := range extra {
		dir := filepath.Join(root, rel)
		file, err := readModule(dir)
		if err != nil {
			return nil, zerr.With(err, "root", rel)
		}
		add(member{Path: file.Module.Mod.Path, Dir: dir, File: file})
	}

	if len(byPath) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoRoots, ""), "runtime", runtime)
	}

	roots := make([]domain.Package, 0, len(byPath))
	for _, path := range slices.Sorted(maps.Keys(byPath)) {
		roots = append(roots, byPath[path])
	}
	return roots, nil
}

// Resolve lists the module graph of the module in dir and reduces it to the selected versions.
func (r *Resolver) Resolve(ctx context.Context, dir string) (*domain.Graph, error) {
	mainFile, err := readModule(dir)
	if err != nil {
		return nil, err
	}
	mainPath := mainFile.Module.Mod.Path

	members := []member{{Path: mainPath, Dir: dir, File: mainFile}}
	repl := newReplacements()
	sum := newSums()

	workPath, err := r.workFile(ctx, dir)
	if err != nil {
		return nil, err
	}
	var work *modfile.WorkFile
	if workPath != "" {
		members, work, err = workspaceMembers(workPath)
		if err != nil {
			return nil, err
		}
	}

	local := make(map[string]member, len(members))
	for _, m := range members {
		local[m.Path] = m
		repl.add(m.Dir, m.File.Replace)
		if err := sum.load(filepath.Join(m.Dir, goSumFile)); err != nil {
			return nil, err
		}
	}
	if work != nil {
		// Workspace replacements override the ones of its members.
		repl.add(filepath.Dir(workPath), work.Replace)
		if err := sum.load(workPath + ".sum"); err != nil {
			return nil, err
		}
	}
	if _, ok := local[mainPath]; !ok {
		local[mainPath] = member{Path: mainPath, Dir: dir, File: mainFile}
	}

	out, err := r.runner.Output(ctx, dir, "go", "mod", "graph")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrModGraphFailed.Error()), "dir", dir)
	}
	edges, err := parseGraph(out)
	if err != nil {
		return nil, zerr.With(err, "dir", dir)
	}

	selected := selectVersions(edges, local)

	graph := domain.NewGraph()
	for _, path := range slices.Sorted(maps.Keys(selected)) {
		pkg := &domain.Package{ID: domain.PackageID{Path: path, Version: selected[path]}}
		switch m, isLocal := local[path]; {
		case isLocal:
			pkg.Local = true
			pkg.Dir = m.Dir
		default:
			target, replaced := repl.lookup(path, pkg.ID.Version)
			switch {
			case replaced && target.dir != "":
				pkg.Local = true
				pkg.Dir = target.dir
			case replaced:
				pkg.Sum = sum.lookup(target.mod.Path, target.mod.Version)
			default:
				pkg.Sum = sum.lookup(path, pkg.ID.Version)
			}
		}
		if err := graph.AddPackage(pkg); err != nil {
			return nil, err
		}
	}

	for _, e := range edges {
		if selected[e.from.Path] != e.from.Version {
			continue
		}
		if err := graph.AddEdge(e.from.Path, e.to.Path); err != nil {
			return nil, err
		}
	}

	r.logger.Info(fmt.Sprintf("resolved %d packages for %s", graph.Len(), mainPath))
	return graph, nil
}

// workFile asks the go command which go.work file applies to dir.
func (r *Resolver) workFile(ctx context.Context, dir string) (string, error) {
	out, err := r.runner.Output(ctx, dir, "go", "env", "GOWORK")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrModGraphFailed.Error()), "dir", dir)
	}
	path := strings.TrimSpace(string(out))
	if path == "" || path == "off" {
		return "", nil
	}
	return path, nil
}

// localModules lists the modules edited in place under root: the go.work members
// or, outside a workspace, the module at root.
func localModules(root string) ([]member, error) {
	workPath := filepath.Join(root, goWorkFile)
	if os.Getenv("GOWORK") != "off" {
		if _, err := os.Stat(workPath); err == nil {
			members, _, err := workspaceMembers(workPath)
			return members, err
		}
	}

	file, err := readModule(root)
	if err != nil {
		return nil, err
	}
	return []member{{Path: file.Module.Mod.Path, Dir: root, File: file}}, nil
}

type edge struct {
	from module.Version
	to   module.Version
}

// parseGraph decodes `go mod graph` output: one "from to" pair of path[@version] per line.
func parseGraph(out []byte) ([]edge, error) {
	var edges []edge
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, zerr.With(zerr.Wrap(domain.ErrModGraphFailed, "unexpected graph line"), "line", line)
		}
		from, to := splitNode(fields[0]), splitNode(fields[1])
		if slices.Contains(pseudoModules, from.Path) || slices.Contains(pseudoModules, to.Path) {
			continue
		}
		edges = append(edges, edge{from: from, to: to})
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrModGraphFailed.Error())
	}
	return edges, nil
}

func splitNode(node string) module.Version {
	path, version, _ := strings.Cut(node, "@")
	return module.Version{Path: path, Version: version}
}

// selectVersions applies minimal version selection to the listed graph: the highest version
// of each path wins. Modules edited in place have no version.
func selectVersions(edges []edge, local map[string]member) map[string]string {
	selected := make(map[string]string)
	consider := func(v module.Version) {
		if _, ok := local[v.Path]; ok {
			selected[v.Path] = ""
			return
		}
		current, ok := selected[v.Path]
		if !ok || semver.Compare(v.Version, current) > 0 {
			selected[v.Path] = v.Version
		}
	}

	for path := range local {
		selected[path] = ""
	}
	for _, e := range edges {
		consider(e.from)
		consider(e.to)
	}
	return selected
}

// replacement is the target of a replace directive: a directory or another module version.
type replacement struct {
	dir string
	mod module.Version
}

type replacements struct {
	byKey map[module.Version]replacement
}

func newReplacements() *replacements {
	return &replacements{byKey: make(map[module.Version]replacement)}
}

func (r *replacements) add(base string, directives []*modfile.Replace) {
	for _, d := range directives {
		var target replacement
		if d.New.Version == "" {
			dir := d.New.Path
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(base, dir)
			}
			target.dir = dir
		} else {
			target.mod = d.New
		}
		r.byKey[d.Old] = target
	}
}

// lookup finds the replacement of path@version, preferring a version specific directive.
func (r *replacements) lookup(path, version string) (replacement, bool) {
	if target, ok := r.byKey[module.Version{Path: path, Version: version}]; ok {
		return target, true
	}
	target, ok := r.byKey[module.Version{Path: path}]
	return target, ok
}
