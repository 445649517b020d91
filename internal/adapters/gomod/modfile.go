// Package gomod resolves dependency graphs and the toolchain through the go command.
package gomod

import (
	"os"
	"path/filepath"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/modfile"
)

const (
	goModFile  = "go.mod"
	goSumFile  = "go.sum"
	goWorkFile = "go.work"
)

// readModule parses the go.mod in dir.
func readModule(dir string) (*modfile.File, error) {
	path := filepath.Join(dir, goModFile)
	//nolint:gosec // Path is derived from a module directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGoModNotFound.Error()), "path", path)
	}
	file, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGoModParseFailed.Error()), "path", path)
	}
	if file.Module == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrGoModParseFailed, "missing module directive"), "path", path)
	}
	return file, nil
}

// readWork parses the go.work at path.
func readWork(path string) (*modfile.WorkFile, error) {
	//nolint:gosec // Path is reported by the go command or the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGoModParseFailed.Error()), "path", path)
	}
	file, err := modfile.ParseWork(path, data, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGoModParseFailed.Error()), "path", path)
	}
	return file, nil
}

// member is a module edited in place: the main module or a workspace member.
type member struct {
	Path string
	Dir  string
	File *modfile.File
}

// workspaceMembers lists the modules a go.work file uses, in declaration order.
func workspaceMembers(workPath string) ([]member, *modfile.WorkFile, error) {
	work, err := readWork(workPath)
	if err != nil {
		return nil, nil, err
	}

	base := filepath.Dir(workPath)
	members := make([]member, 0, len(work.Use))
	for _, use := range work.Use {
		dir := use.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		file, err := readModule(dir)
		if err != nil {
			return nil, nil, err
		}
		members = append(members, member{Path: file.Module.Mod.Path, Dir: dir, File: file})
	}
	return members, work, nil
}

// requiresDirectly reports whether the module file lists path as a direct requirement.
func requiresDirectly(file *modfile.File, path string) bool {
	for _, req := range file.Require {
		if req.Mod.Path == path && !req.Indirect {
			return true
		}
	}
	return false
}
