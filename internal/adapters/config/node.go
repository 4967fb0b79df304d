package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cxxgraph/internal/adapters/fs"
	"go.trai.ch/cxxgraph/internal/adapters/logger"
	"go.trai.ch/cxxgraph/internal/core/ports"
)

// NodeID is the unique identifier for the settings loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SettingsLoader, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(fsys, log), nil
		},
	})
}
