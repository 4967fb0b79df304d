package cachefile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cxxgraph/internal/adapters/fs"
	"go.trai.ch/cxxgraph/internal/adapters/logger"
	"go.trai.ch/cxxgraph/internal/core/ports"
)

// NodeID is the unique identifier for the cache store Graft node.
const NodeID graft.ID = "adapter.cachefile"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(fsys, log), nil
		},
	})
}
