package telemetry

import (
	"context"

	"go.trai.ch/cxxgraph/internal/core/ports"
)

// NoOpRecorder is a ports.Telemetry that records nothing.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a new NoOpRecorder.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

// Record returns ctx unchanged and a vertex that discards everything.
func (r *NoOpRecorder) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, NoOpVertex{}
}

// Close does nothing.
func (r *NoOpRecorder) Close() error {
	return nil
}

// NoOpVertex is a ports.Vertex that discards everything.
type NoOpVertex struct{}

// Log does nothing.
func (NoOpVertex) Log(string) {}

// SetAttribute does nothing.
func (NoOpVertex) SetAttribute(string, any) {}

// Complete does nothing.
func (NoOpVertex) Complete(error) {}

// Cached does nothing.
func (NoOpVertex) Cached() {}
