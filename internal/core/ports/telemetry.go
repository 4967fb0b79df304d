package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the phases of a scan.
type Telemetry interface {
	// Record starts a vertex for a phase.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is one recorded phase.
type Vertex interface {
	// Log attaches a message to the vertex.
	Log(msg string)
	// SetAttribute attaches a counter or label to the vertex.
	SetAttribute(key string, value any)
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
	// Cached marks the vertex as satisfied from the cache.
	Cached()
}
