package graph

import (
	"context"

	"github.com/vk/propgraph/internal/ctxlog"
	"github.com/vk/propgraph/internal/node"
	"github.com/vk/propgraph/internal/property"
)

// sortIfNeeded recomputes the evaluation order when a topology change has
// been flagged since the last sort.
func (g *Graph) sortIfNeeded(ctx context.Context) {
	if !g.sortRequested {
		return
	}
	g.sortNow(ctx)
	g.sortRequested = false
}

// sortNow runs a depth-first topological sort over the link graph. Each
// component is emitted by prepending after all of its dependents have been
// visited, so for every link A→B the owner of A precedes the owner of B.
//
// Two marks guard the traversal: "visiting" for components on the current
// recursion stack and "visited" for finished ones. Hitting a visiting
// component means the links form a cycle; the walk skips it rather than
// re-entering, which keeps the sort terminating and emits every component
// exactly once. The cycle itself is reported, not resolved; the resulting
// order is still some valid-looking order and consumers keep running.
func (g *Graph) sortNow(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	visiting := make(map[*node.Component]bool, len(g.components))
	visited := make(map[*node.Component]bool, len(g.components))
	order := make([]*node.Component, 0, len(g.components))

	var visit func(c *node.Component)
	visit = func(c *node.Component) {
		if visited[c] {
			return
		}
		if visiting[c] {
			logger.Warn("Link cycle detected; evaluation order within the cycle is arbitrary.",
				"component", c.String())
			return
		}
		visiting[c] = true
		for _, d := range dependents(c) {
			visit(d)
		}
		delete(visiting, c)
		visited[c] = true
		order = append([]*node.Component{c}, order...)
	}

	for _, c := range g.components {
		visit(c)
	}

	g.order = order
	logger.Debug("Evaluation order recomputed.", "components", len(order))
}

// dependents collects every component reachable in one hop along an outgoing
// link from any of c's properties. Both property sets are scanned.
func dependents(c *node.Component) []*node.Component {
	var out []*node.Component
	seen := make(map[*node.Component]bool)
	scan := func(props []*property.Property) {
		for _, p := range props {
			for _, l := range p.OutgoingLinks() {
				set := l.Dst().OwnerSet()
				if set == nil {
					continue
				}
				d, ok := set.Owner().(*node.Component)
				if !ok || d == c || seen[d] {
					continue
				}
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	scan(c.In().Properties())
	scan(c.Out().Properties())
	return out
}
