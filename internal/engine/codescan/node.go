package codescan

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the code scanner Graft node.
const NodeID graft.ID = "engine.codescan"

func init() {
	graft.Register(graft.Node[*CodeScanner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*CodeScanner, error) {
			return New(), nil
		},
	})
}
