// Package app implements the application layer for kindred.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports"
	"go.trai.ch/kindred/internal/engine/statetag"
	"go.trai.ch/zerr"
)

// Environment variables that override the persisted export record, and that export --print emits.
const (
	EnvStateTable = "KINDRED_STATE_TABLE"
	EnvToolchain  = "KINDRED_ENV"
	EnvOutDir     = "KINDRED_OUT_DIR"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.GraphResolver
	probe        ports.ToolchainProbe
	builder      *statetag.Builder
	store        ports.ExportStore
	codegen      ports.CodeGenerator
	tracer       ports.Tracer
	logger       ports.Logger

	now    func() time.Time
	getenv func(string) string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.GraphResolver,
	probe ports.ToolchainProbe,
	builder *statetag.Builder,
	store ports.ExportStore,
	codegen ports.CodeGenerator,
	tracer ports.Tracer,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		probe:        probe,
		builder:      builder,
		store:        store,
		codegen:      codegen,
		tracer:       tracer,
		logger:       logger,
		now:          time.Now,
		getenv:       os.Getenv,
	}
}

// WithClock sets the clock used to timestamp export records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithGetenv sets the lookup used for the KINDRED_* overrides.
func (a *App) WithGetenv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// ExportOptions configures the export command.
type ExportOptions struct {
	// Dir is the directory the workspace is discovered from.
	Dir string
	// Print also writes the exported values as KEY=value lines to Out.
	Print bool
	Out   io.Writer
}

// Export computes one state tag per root module and persists the export record.
// Resolution failures poison the table instead of failing the export; they surface when
// a generator reads the table.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	ctx, span := a.tracer.Start(ctx, domain.SpanExport)
	defer span.End()

	cfg, err := a.configLoader.Load(dirOrDot(opts.Dir))
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to load configuration")
	}

	toolchain, roots, table := a.stateTable(ctx, cfg)
	if failure := table.Err(); failure != nil {
		span.RecordError(failure)
		a.logger.Warn(table.String())
	}

	record := &domain.ExportRecord{
		Table:     table.String(),
		Toolchain: toolchain.Fingerprint(),
		OutDir:    filepath.Join(cfg.Root, domain.StateDirName),
		Roots:     roots,
		Timestamp: a.now().UTC(),
	}
	if err := a.store.Put(cfg.Root, cfg.StatePath, record); err != nil {
		span.RecordError(err)
		return err
	}

	if table.Err() == nil {
		a.logger.Info(fmt.Sprintf("exported %d state tags to %s", len(table.Entries()), cfg.StatePath))
	}

	if opts.Print {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		_, err := fmt.Fprintf(out, "%s=%s\n%s=%s\n%s=%s\n",
			EnvStateTable, record.Table,
			EnvToolchain, record.Toolchain,
			EnvOutDir, record.OutDir,
		)
		if err != nil {
			return zerr.Wrap(err, "failed to print export")
		}
	}
	return nil
}

// stateTable probes the toolchain and builds the table. Every failure is folded into
// a poisoned table carrying a one-line message.
func (a *App) stateTable(ctx context.Context, cfg *domain.Config) (domain.Toolchain, []string, domain.StateTable) {
	toolchain, err := a.toolchain(ctx, cfg)
	if err != nil {
		return toolchain, nil, domain.ErrTable(oneLine(err))
	}

	roots, err := a.resolver.Roots(ctx, cfg.Root, cfg.Runtime, cfg.Roots)
	if err != nil {
		return toolchain, nil, domain.ErrTable(oneLine(err))
	}

	dirs := make([]string, 0, len(roots))
	entries := make([]domain.StateEntry, 0, len(roots))
	for _, root := range roots {
		tag, err := a.builder.Build(ctx, root, toolchain, cfg.Exclude)
		if err != nil {
			return toolchain, dirs, domain.ErrTable(oneLine(err))
		}
		entries = append(entries, domain.StateEntry{Name: root.ID.Path, Tag: tag})
		dirs = append(dirs, relDir(cfg.Root, root.Dir))
	}
	return toolchain, dirs, domain.OkTable(entries)
}

func (a *App) toolchain(ctx context.Context, cfg *domain.Config) (domain.Toolchain, error) {
	ctx, span := a.tracer.Start(ctx, domain.SpanProbe)
	defer span.End()

	toolchain, err := a.probe.Probe(ctx, cfg.Root)
	if err != nil {
		span.RecordError(err)
		return domain.Toolchain{}, err
	}
	toolchain.OptLevel = cfg.OptLevel
	toolchain.Flags = slices.Concat(toolchain.Flags, cfg.Flags)
	span.SetAttribute("toolchain", toolchain.Fingerprint())
	return toolchain, nil
}

// Generate derives the type tag of every opted-in declaration in dir and writes the generated file.
// A poisoned table is fatal here.
func (a *App) Generate(ctx context.Context, dir string) error {
	dir = dirOrDot(dir)
	ctx, span := a.tracer.Start(ctx, domain.SpanGenerate, ports.WithAttribute("dir", dir))
	defer span.End()

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to load configuration")
	}

	export, err := a.readExport(cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}
	table, err := export.StateTable()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := table.Err(); err != nil {
		span.RecordError(err)
		return err
	}

	pkg, err := a.codegen.Scan(dir)
	if err != nil {
		span.RecordError(err)
		return err
	}

	tagged := make([]domain.TaggedDecl, 0, len(pkg.Decls))
	for _, decl := range pkg.Decls {
		tag, err := domain.DeriveTypeTag(table, decl.DeclPath, decl.Structural, export.Toolchain)
		if err != nil {
			span.RecordError(err)
			return err
		}
		tagged = append(tagged, domain.TaggedDecl{TypeDecl: decl, Tag: tag})
	}

	path, err := a.codegen.Write(pkg, tagged, domain.GenerateMeta{OutDir: export.OutDir, Toolchain: export.Toolchain})
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("types", len(tagged))

	if len(tagged) == 0 {
		a.logger.Info(fmt.Sprintf("no opted-in types in %s", pkg.Dir))
		return nil
	}
	a.logger.Info(fmt.Sprintf("wrote %d type tags to %s", len(tagged), path))
	return nil
}

// readExport returns the export record, preferring the environment overrides.
func (a *App) readExport(cfg *domain.Config) (*domain.ExportRecord, error) {
	if table := a.getenv(EnvStateTable); table != "" {
		return &domain.ExportRecord{
			Table:     table,
			Toolchain: a.getenv(EnvToolchain),
			OutDir:    a.getenv(EnvOutDir),
		}, nil
	}

	record, err := a.store.Get(cfg.Root, cfg.StatePath)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoExportRecord, ""), "path", filepath.Join(cfg.Root, cfg.StatePath))
	}
	return record, nil
}

// Show prints the persisted export record to w.
func (a *App) Show(_ context.Context, dir string, w io.Writer) error {
	cfg, err := a.configLoader.Load(dirOrDot(dir))
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	record, err := a.readExport(cfg)
	if err != nil {
		return err
	}
	table, err := record.StateTable()
	if err != nil {
		return err
	}
	return renderTable(w, record, table)
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func relDir(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return filepath.ToSlash(rel)
}

// oneLine flattens an error into the single line the table sentinel can carry.
func oneLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}
