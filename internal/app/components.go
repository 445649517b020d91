package app

import (
	"context"

	"go.trai.ch/kindred/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Tracer   ports.Tracer
	Recorder ports.Recorder
}

// Close flushes pending spans and closes the progress recorder.
// A tracer with a Shutdown method owns the recorder and closes it through its span processor.
func (c *Components) Close(ctx context.Context) error {
	if s, ok := c.Tracer.(interface{ Shutdown(context.Context) error }); ok {
		return s.Shutdown(ctx)
	}
	if c.Recorder != nil {
		return c.Recorder.Close()
	}
	return nil
}
