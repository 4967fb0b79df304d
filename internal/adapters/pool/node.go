package pool

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cxxgraph/internal/core/ports"
)

// NodeID is the unique identifier for the worker pool Graft node.
const NodeID graft.ID = "adapter.pool"

func init() {
	graft.Register(graft.Node[ports.WorkerPool]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WorkerPool, error) {
			return New(0), nil
		},
	})
}
