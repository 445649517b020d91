package statetag

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindred/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindred/internal/adapters/gomod"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindred/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kindred/internal/core/ports"
)

// NodeID is the unique identifier for the state tag builder Graft node.
const NodeID graft.ID = "engine.statetag"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gomod.ResolverNodeID,
			fs.FingerprinterNodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			resolver, err := graft.Dep[ports.GraphResolver](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.SourceFingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(resolver, fingerprinter, tracer), nil
		},
	})
}
