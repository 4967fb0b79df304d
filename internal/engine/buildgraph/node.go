package buildgraph

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the build graph Graft node.
const NodeID graft.ID = "engine.buildgraph"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Builder, error) {
			return New(), nil
		},
	})
}
