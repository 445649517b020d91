package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindred/internal/adapters/telemetry/progrock"
	"go.trai.ch/kindred/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			recorder, err := graft.Dep[ports.Recorder](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer("kindred", recorder), nil
		},
	})
}
