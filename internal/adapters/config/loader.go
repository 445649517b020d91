// Package config provides the configuration loader for kindred.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedVersion is the only config file version understood by this loader.
const supportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd looking for go.work. Without one (or with GOWORK=off)
// the nearest directory holding a go.mod is the root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	workspace := os.Getenv("GOWORK") != "off"
	var moduleRoot string

	for dir := abs; ; {
		if workspace && exists(filepath.Join(dir, "go.work")) {
			return dir, nil
		}
		if moduleRoot == "" && exists(filepath.Join(dir, "go.mod")) {
			moduleRoot = dir
			if !workspace {
				break
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if moduleRoot == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrGoModNotFound, ""), "cwd", abs)
	}
	return moduleRoot, nil
}

// Load reads kindred.yaml from the workspace root containing cwd.
// A missing file yields the defaults.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig(root)
	path := filepath.Join(root, domain.ConfigFileName)

	//nolint:gosec // Path is derived from the discovered workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Kindredfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if file.Version != "" && file.Version != supportedVersion {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigVersion, ""), "version", file.Version)
		return nil, zerr.With(err, "path", path)
	}

	l.apply(cfg, &file)
	return cfg, nil
}

func (l *Loader) apply(cfg *domain.Config, file *Kindredfile) {
	if file.Runtime != "" {
		cfg.Runtime = file.Runtime
	}
	if file.State != "" {
		cfg.StatePath = filepath.Clean(file.State)
	}

	for _, root := range file.Roots {
		cleaned := filepath.Clean(root)
		if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
			l.Logger.Warn(fmt.Sprintf("ignoring root %q outside the workspace", root))
			continue
		}
		if !slices.Contains(cfg.Roots, cleaned) {
			cfg.Roots = append(cfg.Roots, cleaned)
		}
	}

	for _, ext := range file.Exclude {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(cfg.Exclude, ext) {
			cfg.Exclude = append(cfg.Exclude, ext)
		}
	}

	cfg.OptLevel = file.Toolchain.Opt
	cfg.Flags = slices.Clone(file.Toolchain.Flags)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
