// Package statetag computes the state tag of a root module from its dependency closure.
package statetag

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Builder walks a root module's dependency closure and hashes it into a StateTag.
type Builder struct {
	resolver      ports.GraphResolver
	fingerprinter ports.SourceFingerprinter
	tracer        ports.Tracer
}

// NewBuilder creates a new Builder.
func NewBuilder(
	resolver ports.GraphResolver,
	fingerprinter ports.SourceFingerprinter,
	tracer ports.Tracer,
) *Builder {
	return &Builder{
		resolver:      resolver,
		fingerprinter: fingerprinter,
		tracer:        tracer,
	}
}

// Build resolves root's dependency graph, fingerprints every closure member and hashes the
// (name, fingerprint) pairs in closure order followed by the toolchain fingerprint.
// Any error means the state of root cannot be known and must not be guessed.
func (b *Builder) Build(
	ctx context.Context,
	root domain.Package,
	toolchain domain.Toolchain,
	exclude []string,
) (domain.StateTag, error) {
	closure, err := b.closure(ctx, root)
	if err != nil {
		return 0, zerr.With(err, "root", root.ID.Path)
	}

	fingerprints, err := b.fingerprints(ctx, closure, exclude)
	if err != nil {
		return 0, zerr.With(err, "root", root.ID.Path)
	}

	h := domain.NewStateHasher()
	for i, p := range closure {
		h.Add(p.ID.String(), fingerprints[i])
	}
	return h.Sum(toolchain), nil
}

func (b *Builder) closure(ctx context.Context, root domain.Package) ([]domain.Package, error) {
	ctx, span := b.tracer.Start(ctx, domain.SpanResolve, ports.WithAttribute("root", root.ID.Path))
	defer span.End()

	graph, err := b.resolver.Resolve(ctx, root.Dir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	closure, err := graph.Closure(root.ID.Path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("packages", len(closure))
	return closure, nil
}

// fingerprints computes one fingerprint per closure member, concurrently but indexed by
// closure position so the caller can hash them in order.
func (b *Builder) fingerprints(
	ctx context.Context,
	closure []domain.Package,
	exclude []string,
) ([]domain.Fingerprint, error) {
	_, span := b.tracer.Start(ctx, domain.SpanFingerprint, ports.WithAttribute("packages", len(closure)))
	defer span.End()

	out := make([]domain.Fingerprint, len(closure))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range closure {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			fp, err := b.fingerprint(p, exclude)
			if err != nil {
				return err
			}
			out[i] = fp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	for i, p := range closure {
		_, _ = fmt.Fprintf(span, "%s %s\n", p.ID, out[i])
	}
	return out, nil
}

func (b *Builder) fingerprint(p domain.Package, exclude []string) (domain.Fingerprint, error) {
	if p.Local {
		fp, err := b.fingerprinter.Fingerprint(p.Dir, exclude)
		if err != nil {
			return domain.Fingerprint{}, zerr.With(err, "package", p.ID.Path)
		}
		return fp, nil
	}

	if p.Sum == "" {
		return domain.Fingerprint{}, zerr.With(zerr.Wrap(domain.ErrMissingFingerprint, ""), "package", p.ID.String())
	}
	return domain.Fingerprint{Kind: domain.FingerprintManager, Value: p.Sum}, nil
}
