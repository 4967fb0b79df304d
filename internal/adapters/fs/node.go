package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cxxgraph/internal/core/ports"
)

const (
	WalkerNodeID     graft.ID = "adapter.fs.walker"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
	FileSystemNodeID graft.ID = "adapter.fs.filesystem"
)

func init() {
	graft.Register(graft.Node[ports.Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewOSFS(), nil
		},
	})
}
