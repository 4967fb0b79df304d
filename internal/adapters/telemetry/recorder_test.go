package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/cxxgraph/internal/adapters/telemetry"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/cxxgraph/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRecorder(t *testing.T) (*telemetry.Recorder, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	rec := telemetry.NewRecorder(progrock.NewTape(), tp.Tracer("test")).WithShutdown(tp.Shutdown)
	return rec, exporter
}

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Telemetry = (*telemetry.Recorder)(nil)
	var _ ports.Vertex = (*telemetry.Vertex)(nil)
	var _ ports.Telemetry = (*telemetry.NoOpRecorder)(nil)
	var _ ports.Vertex = telemetry.NoOpVertex{}
}

func TestRecorder_RecordsSpans(t *testing.T) {
	rec, exporter := newRecorder(t)

	ctx, scan := rec.Record(t.Context(), "scan")
	_, tokenize := rec.Record(ctx, "tokenize")
	tokenize.SetAttribute("files", 12)
	tokenize.SetAttribute("root", "/src")
	tokenize.SetAttribute("cached", false)
	tokenize.Log("tokenized 3 files")
	tokenize.Complete(nil)
	scan.Complete(errors.New("timed out"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	child, parent := spans[0], spans[1]
	assert.Equal(t, "tokenize", child.Name)
	assert.Equal(t, "scan", parent.Name)
	assert.Equal(t, parent.SpanContext.SpanID(), child.Parent.SpanID())

	assert.Contains(t, child.Attributes, attribute.Int("files", 12))
	assert.Contains(t, child.Attributes, attribute.String("root", "/src"))
	assert.Contains(t, child.Attributes, attribute.Bool("cached", false))
	require.Len(t, child.Events, 1)
	assert.Equal(t, "log", child.Events[0].Name)
	assert.Equal(t, codes.Ok, child.Status.Code)

	assert.Equal(t, codes.Error, parent.Status.Code)
	assert.Equal(t, "timed out", parent.Status.Description)

	require.NoError(t, rec.Close())
}

func TestRecorder_Cached(t *testing.T) {
	rec, exporter := newRecorder(t)

	_, v := rec.Record(t.Context(), "load-cache")
	v.Cached()
	v.Complete(nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes, attribute.Bool("cached", true))
}

func TestRecorder_SamePhaseTwice(t *testing.T) {
	rec, exporter := newRecorder(t)

	for range 2 {
		_, v := rec.Record(t.Context(), "scan")
		v.Complete(nil)
	}

	assert.Len(t, exporter.GetSpans(), 2)
}

func TestLogBridge_ReportsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var messages []string
	mockLogger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		messages = append(messages, msg)
	}).Times(2)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogBridge(mockLogger)))
	rec := telemetry.NewRecorder(progrock.NewTape(), tp.Tracer("test"))

	_, ok := rec.Record(t.Context(), "classify")
	ok.SetAttribute("warnings", 2)
	ok.Complete(nil)

	_, failed := rec.Record(t.Context(), "graph")
	failed.Complete(errors.New("cycle detected"))

	require.Len(t, messages, 2)
	assert.Regexp(t, `^classify \S+ warnings=2$`, messages[0])
	assert.Regexp(t, `^graph \S+ failed: cycle detected$`, messages[1])
}

func TestNoOpRecorder(t *testing.T) {
	rec := telemetry.NewNoOpRecorder()

	ctx, v := rec.Record(t.Context(), "scan")
	assert.Equal(t, t.Context(), ctx)

	v.Log("ignored")
	v.SetAttribute("k", 1)
	v.Cached()
	v.Complete(nil)

	assert.NoError(t, rec.Close())
}
