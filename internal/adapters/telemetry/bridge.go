package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kindred/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to mirror spans onto a progress recorder.
type Bridge struct {
	recorder ports.Recorder
	vertices sync.Map
}

// NewBridge returns a new Bridge.
func NewBridge(recorder ports.Recorder) *Bridge {
	return &Bridge{recorder: recorder}
}

// OnStart opens a vertex for the span.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}
	id := sc.SpanID().String()
	b.vertices.Store(id, b.recorder.Record(id, s.Name()))
}

// OnEnd copies the span's attributes and log events into its vertex and completes it.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}
	v, ok := b.vertices.LoadAndDelete(sc.SpanID().String())
	if !ok {
		return
	}
	vertex, ok := v.(ports.Vertex)
	if !ok {
		return
	}

	out := vertex.Stdout()
	for _, attr := range s.Attributes() {
		_, _ = fmt.Fprintf(out, "%s=%s\n", attr.Key, attr.Value.Emit())
	}
	for _, event := range s.Events() {
		if event.Name != LogEventName {
			continue
		}
		for _, attr := range event.Attributes {
			if attr.Key == "message" {
				msg := attr.Value.AsString()
				if !strings.HasSuffix(msg, "\n") {
					msg += "\n"
				}
				_, _ = fmt.Fprint(out, msg)
			}
		}
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "span failed"
		}
		err = errors.New(desc)
	}
	vertex.Complete(err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown closes the recorder.
func (b *Bridge) Shutdown(_ context.Context) error {
	return b.recorder.Close()
}
