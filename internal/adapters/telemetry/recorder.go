// Package telemetry records pipeline phases as progrock vertices and
// OpenTelemetry spans.
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/cxxgraph/internal/core/ports"
)

// InstrumentationName names the tracer used for pipeline phases.
const InstrumentationName = "go.trai.ch/cxxgraph"

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry. Every phase becomes a progrock vertex
// on the tape and a span of the tracer.
type Recorder struct {
	w        progrock.Writer
	rec      *progrock.Recorder
	tracer   trace.Tracer
	shutdown func(context.Context) error
	seq      atomic.Uint64
}

// New creates a Recorder on a fresh tape whose spans are reported to log.
func New(log ports.Logger) *Recorder {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogBridge(log)))
	return NewRecorder(progrock.NewTape(), tp.Tracer(InstrumentationName)).WithShutdown(tp.Shutdown)
}

// NewRecorder creates a Recorder writing vertices to w and spans to tracer.
func NewRecorder(w progrock.Writer, tracer trace.Tracer) *Recorder {
	return &Recorder{
		w:      w,
		rec:    progrock.NewRecorder(w),
		tracer: tracer,
	}
}

// WithShutdown registers a function flushing the tracer provider on Close.
func (r *Recorder) WithShutdown(fn func(context.Context) error) *Recorder {
	r.shutdown = fn
	return r
}

// Record starts a vertex and a span named name. The returned context carries
// the span, so phases recorded with it nest below this one.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	ctx, span := r.tracer.Start(ctx, name)

	// Re-running a phase in the same session must not update the old vertex.
	d := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	v := r.rec.Vertex(d, name)

	return ctx, &Vertex{vertex: v, span: span}
}

// Close flushes the tracer provider and closes the tape.
func (r *Recorder) Close() error {
	if r.shutdown != nil {
		if err := r.shutdown(context.Background()); err != nil {
			return err
		}
	}
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
