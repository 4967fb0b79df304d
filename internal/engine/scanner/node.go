package scanner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cxxgraph/internal/adapters/fs"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cxxgraph/internal/adapters/pool" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cxxgraph/internal/core/ports"
)

// NodeID is the unique identifier for the project scanner Graft node.
const NodeID graft.ID = "engine.scanner"

func init() {
	graft.Register(graft.Node[*Scanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FileSystemNodeID,
			fs.WalkerNodeID,
			fs.HasherNodeID,
			pool.NodeID,
		},
		Run: func(ctx context.Context) (*Scanner, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[ports.Walker](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			workers, err := graft.Dep[ports.WorkerPool](ctx)
			if err != nil {
				return nil, err
			}

			return New(fsys, walker, hasher, workers), nil
		},
	})
}
