package telemetry

import (
	"fmt"

	"github.com/vito/progrock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/cxxgraph/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex over a progrock vertex and a span.
type Vertex struct {
	vertex *progrock.VertexRecorder
	span   trace.Span
}

// Log writes msg to the vertex output and adds it as a span event.
func (v *Vertex) Log(msg string) {
	_, _ = fmt.Fprintln(v.vertex.Stdout(), msg)
	v.span.AddEvent("log", trace.WithAttributes(attribute.String("message", msg)))
}

// SetAttribute adds a key-value pair to the span.
func (v *Vertex) SetAttribute(key string, value any) {
	v.span.SetAttributes(toAttribute(key, value))
}

// Complete marks the vertex as finished and ends the span.
func (v *Vertex) Complete(err error) {
	if err != nil {
		v.span.RecordError(err)
		v.span.SetStatus(codes.Error, err.Error())
	} else {
		v.span.SetStatus(codes.Ok, "")
	}
	v.span.End()
	v.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.span.SetAttributes(attribute.Bool("cached", true))
	v.vertex.Cached()
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
