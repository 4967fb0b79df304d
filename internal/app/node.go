package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cxxgraph/internal/adapters/cachefile" //nolint:depguard // Wired in app layer
	"go.trai.ch/cxxgraph/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cxxgraph/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/cxxgraph/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cxxgraph/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/cxxgraph/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/cxxgraph/internal/engine/buildgraph"
	"go.trai.ch/cxxgraph/internal/engine/codescan"
	"go.trai.ch/cxxgraph/internal/engine/scanner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cachefile.NodeID,
			fs.FileSystemNodeID,
			scanner.NodeID,
			codescan.NodeID,
			buildgraph.NodeID,
			watcher.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	scan, err := graft.Dep[*scanner.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	code, err := graft.Dep[*codescan.CodeScanner](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*buildgraph.Builder](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, store, fsys, scan, code, builder, w, tel, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       a,
		Logger:    log,
		Telemetry: tel,
	}, nil
}
