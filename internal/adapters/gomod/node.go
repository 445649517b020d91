package gomod

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindred/internal/adapters/logger"
	"go.trai.ch/kindred/internal/adapters/shell"
	"go.trai.ch/kindred/internal/core/ports"
)

const (
	// ResolverNodeID is the unique identifier for the graph resolver Graft node.
	ResolverNodeID graft.ID = "adapter.gomod.resolver"
	// ProbeNodeID is the unique identifier for the toolchain probe Graft node.
	ProbeNodeID graft.ID = "adapter.gomod.probe"
)

func init() {
	graft.Register(graft.Node[ports.GraphResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.GraphResolver, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(runner, log), nil
		},
	})

	graft.Register(graft.Node[ports.ToolchainProbe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.ToolchainProbe, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewProbe(runner), nil
		},
	})
}
