// Package graph owns the set of live components, the topological sorter that
// orders them, and the three-phase evaluation engine that consumes that
// order once per cycle.
package graph

import (
	"context"
	"time"

	"github.com/vk/propgraph/internal/ctxlog"
	"github.com/vk/propgraph/internal/node"
	"github.com/vk/propgraph/internal/registry"
)

// Graph is a single running graph instance: its typed registry, the cached
// evaluation order, and the cycle counters. All operations are synchronous
// and single-threaded by design; a cycle runs to completion before control
// returns to the caller.
type Graph struct {
	reg        *registry.Registry
	catalog    *registry.Catalog
	components []*node.Component

	sortRequested bool
	order         []*node.Component

	cycle   int
	startAt time.Time
	lastAt  time.Time
}

// New creates an empty graph backed by the given component catalog. The
// catalog may be nil for graphs built purely through Add.
func New(catalog *registry.Catalog) *Graph {
	now := time.Now()
	return &Graph{
		reg:     registry.New(),
		catalog: catalog,
		startAt: now,
		lastAt:  now,
	}
}

// Registry exposes the graph's typed registry for listeners and lookups.
func (g *Graph) Registry() *registry.Registry { return g.reg }

// Catalog returns the component catalog the graph was built with.
func (g *Graph) Catalog() *registry.Catalog { return g.catalog }

// Add registers a component with the graph, wires it to the scheduler, and
// invalidates the evaluation order.
func (g *Graph) Add(c *node.Component) {
	g.reg.Add(c)
	g.components = append(g.components, c)
	c.AttachScheduler(g)
	g.RequestSort()
}

// Remove disposes a component: every link touching its properties is removed
// from both endpoints, then it leaves the registry and the evaluation set.
func (g *Graph) Remove(c *node.Component) {
	c.Dispose()
	g.reg.Remove(c)
	for i, other := range g.components {
		if other == c {
			g.components = append(g.components[:i], g.components[i+1:]...)
			break
		}
	}
	c.AttachScheduler(nil)
	g.RequestSort()
}

// Spawn instantiates a component type from the catalog and adds it.
func (g *Graph) Spawn(typeTag, name string) (*node.Component, error) {
	c, err := g.catalog.New(typeTag, name)
	if err != nil {
		return nil, err
	}
	g.Add(c)
	return c, nil
}

// Components returns the live components in insertion order.
func (g *Graph) Components() []*node.Component {
	out := make([]*node.Component, len(g.components))
	copy(out, g.components)
	return out
}

// Find returns the first component with the given instance name.
func (g *Graph) Find(name string) (*node.Component, bool) {
	for _, c := range g.components {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// RequestSort flags the evaluation order as stale. The next Update run
// re-sorts before evaluating. Consumers must not rely on the order between a
// topology mutation and that re-sort.
func (g *Graph) RequestSort() {
	g.sortRequested = true
}

// Order returns the current evaluation order, re-sorting first if a topology
// change is pending.
func (g *Graph) Order(ctx context.Context) []*node.Component {
	g.sortIfNeeded(ctx)
	out := make([]*node.Component, len(g.order))
	copy(out, g.order)
	return out
}

// Update is the on-change phase: re-sort if requested, then evaluate every
// changed component in dependency order, clearing its changed flags. The
// return value reports whether any hook mutated observable state.
func (g *Graph) Update(ctx context.Context, cy *node.Cycle) bool {
	g.sortIfNeeded(ctx)
	updated := false
	for _, c := range g.order {
		if !c.Changed() {
			continue
		}
		updated = c.Update(ctx, cy) || updated
		c.ClearChanged()
	}
	return updated
}

// Tick is the every-cycle phase: every component's tick hook runs in the
// same sorted order, independent of the changed flag.
func (g *Graph) Tick(ctx context.Context, cy *node.Cycle) bool {
	g.sortIfNeeded(ctx)
	updated := false
	for _, c := range g.order {
		updated = c.Tick(ctx, cy) || updated
	}
	return updated
}

// Finalize is the late pass after all ticks, for work that must observe the
// fully settled state of the cycle.
func (g *Graph) Finalize(ctx context.Context, cy *node.Cycle) bool {
	updated := false
	for _, c := range g.order {
		updated = c.Finalize(ctx, cy) || updated
	}
	return updated
}

// Step runs one full cycle (update, tick, finalize) with a freshly built
// cycle context, and reports whether anything observable changed.
func (g *Graph) Step(ctx context.Context) bool {
	now := time.Now()
	cy := &node.Cycle{
		Number: g.cycle,
		Time:   now.Sub(g.startAt).Seconds(),
		Delta:  now.Sub(g.lastAt).Seconds(),
	}
	g.lastAt = now
	g.cycle++

	logger := ctxlog.FromContext(ctx)
	updated := g.Update(ctx, cy)
	updated = g.Tick(ctx, cy) || updated
	updated = g.Finalize(ctx, cy) || updated
	logger.Debug("Cycle complete.", "cycle", cy.Number, "updated", updated)
	return updated
}

// CycleCount returns how many cycles have run.
func (g *Graph) CycleCount() int { return g.cycle }
