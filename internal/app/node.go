package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindred/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/kindred/internal/adapters/codegen"            //nolint:depguard // Wired in app layer
	"go.trai.ch/kindred/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/kindred/internal/adapters/gomod"              //nolint:depguard // Wired in app layer
	"go.trai.ch/kindred/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/kindred/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/kindred/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/kindred/internal/core/ports"
	"go.trai.ch/kindred/internal/engine/statetag"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			gomod.ResolverNodeID,
			gomod.ProbeNodeID,
			statetag.NodeID,
			cas.NodeID,
			codegen.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.GraphResolver](ctx)
	if err != nil {
		return nil, err
	}

	probe, err := graft.Dep[ports.ToolchainProbe](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*statetag.Builder](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ExportStore](ctx)
	if err != nil {
		return nil, err
	}

	gen, err := graft.Dep[ports.CodeGenerator](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, probe, builder, store, gen, tracer, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      app,
		Logger:   log,
		Tracer:   tracer,
		Recorder: recorder,
	}, nil
}
