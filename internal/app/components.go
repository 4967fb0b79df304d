package app

import (
	"go.trai.ch/cxxgraph/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

// LoggingOptions selects how the logger renders records.
type LoggingOptions struct {
	JSON    bool
	Verbose bool
}

// ConfigureLogging applies opts to the logger when it supports them.
func (c *Components) ConfigureLogging(opts LoggingOptions) {
	if l, ok := c.Logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(opts.JSON)
	}
	if l, ok := c.Logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(opts.Verbose)
	}
}

// Close flushes telemetry.
func (c *Components) Close() error {
	if c.Telemetry == nil {
		return nil
	}
	return c.Telemetry.Close()
}
