// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cxxgraph/internal/adapters/cachefile"
	_ "go.trai.ch/cxxgraph/internal/adapters/config"
	_ "go.trai.ch/cxxgraph/internal/adapters/fs"
	_ "go.trai.ch/cxxgraph/internal/adapters/logger"
	_ "go.trai.ch/cxxgraph/internal/adapters/pool"
	_ "go.trai.ch/cxxgraph/internal/adapters/telemetry"
	_ "go.trai.ch/cxxgraph/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/cxxgraph/internal/app"
	_ "go.trai.ch/cxxgraph/internal/engine/buildgraph"
	_ "go.trai.ch/cxxgraph/internal/engine/codescan"
	_ "go.trai.ch/cxxgraph/internal/engine/scanner"
)
