// Package app wires a running graph instance together: logger, component
// catalog, document loading, and the cycle loop.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/propgraph/internal/ctxlog"
	"github.com/vk/propgraph/internal/graph"
	"github.com/vk/propgraph/internal/hcldoc"
	"github.com/vk/propgraph/internal/registry"
	mathmod "github.com/vk/propgraph/modules/math"
	utilmod "github.com/vk/propgraph/modules/util"
)

// Module registers component types with a catalog.
type Module func(*registry.Catalog)

// coreModules is the builtin component library.
var coreModules = []Module{mathmod.Register, utilmod.Register}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	graph  *graph.Graph
}

// NewApp constructs a fully initialized App with its own isolated logger,
// catalog and graph. A document that fails to load is a fatal startup error.
func NewApp(outW io.Writer, cfg *Config, modules ...Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	catalog := registry.NewCatalog()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod(catalog)
	}
	logger.Debug("Component modules registered.", "count", len(modules))

	g, err := hcldoc.LoadFile(ctx, cfg.DocPath, catalog)
	if err != nil {
		panic(fmt.Errorf("failed to load graph document: %w", err))
	}
	logger.Debug("Graph document loaded.", "components", len(g.Components()))

	return &App{outW: outW, logger: logger, config: cfg, graph: g}
}

// Graph returns the running graph. This is primarily for testing.
func (a *App) Graph() *graph.Graph { return a.graph }

// Run drives the configured number of cycles and reports how many of them
// mutated observable state.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	updatedCycles := 0
	for i := 0; i < a.config.Cycles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if a.graph.Step(ctx) {
			updatedCycles++
		}
	}
	fmt.Fprintf(a.outW, "ran %d cycles over %d components, %d produced updates\n",
		a.config.Cycles, len(a.graph.Components()), updatedCycles)
	return nil
}
