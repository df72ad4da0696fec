package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/propgraph/internal/node"
	"github.com/vk/propgraph/internal/property"
	"github.com/vk/propgraph/internal/value"
)

var relayType = &node.TypeInfo{Tag: "test/relay", Ancestors: []string{"component"}}

// newRelay builds a component that copies its number input to its output when
// evaluated.
func newRelay(name string) *node.Component {
	c := node.New(relayType, name)
	c.AddInput("in", property.New(value.Number, 1, nil))
	c.AddOutput("out", property.New(value.Number, 1, nil))
	c.OnUpdate = func(ctx context.Context, c *node.Component, cy *node.Cycle) bool {
		c.Output("out").SetValue(c.Input("in").Value())
		return true
	}
	return c
}

func chain(t *testing.T, g *Graph, from, to *node.Component) {
	t.Helper()
	_, err := to.Input("in").LinkFrom(from.Output("out"), property.NoIndex, property.NoIndex)
	require.NoError(t, err)
}

func indexOf(order []*node.Component, c *node.Component) int {
	for i, e := range order {
		if e == c {
			return i
		}
	}
	return -1
}

func TestSortOrdersSourcesFirst(t *testing.T) {
	ctx := context.Background()
	g := New(nil)

	// Insert in reverse so insertion order alone cannot satisfy the links.
	c := newRelay("c")
	b := newRelay("b")
	a := newRelay("a")
	g.Add(c)
	g.Add(b)
	g.Add(a)
	chain(t, g, a, b)
	chain(t, g, b, c)

	order := g.Order(ctx)
	require.Len(t, order, 3)
	assert.Less(t, indexOf(order, a), indexOf(order, b))
	assert.Less(t, indexOf(order, b), indexOf(order, c))
}

func TestSortHandlesBranches(t *testing.T) {
	ctx := context.Background()
	g := New(nil)

	src := newRelay("src")
	left := newRelay("left")
	right := newRelay("right")
	sink := newRelay("sink")
	for _, c := range []*node.Component{sink, left, right, src} {
		g.Add(c)
	}
	chain(t, g, src, left)
	chain(t, g, src, right)
	chain(t, g, left, sink)

	order := g.Order(ctx)
	require.Len(t, order, 4)
	assert.Less(t, indexOf(order, src), indexOf(order, left))
	assert.Less(t, indexOf(order, src), indexOf(order, right))
	assert.Less(t, indexOf(order, left), indexOf(order, sink))
}

func TestSortToleratesCycles(t *testing.T) {
	ctx := context.Background()
	g := New(nil)

	a := newRelay("a")
	b := newRelay("b")
	g.Add(a)
	g.Add(b)
	chain(t, g, a, b)
	chain(t, g, b, a)

	order := g.Order(ctx)
	require.Len(t, order, 2, "every component appears exactly once")
	assert.NotEqual(t, order[0], order[1])
}

func TestSortIsCachedUntilTopologyChanges(t *testing.T) {
	ctx := context.Background()
	g := New(nil)

	a := newRelay("a")
	b := newRelay("b")
	g.Add(a)
	g.Add(b)
	chain(t, g, a, b)

	first := g.Order(ctx)
	require.False(t, g.sortRequested)

	// Unlinking flags the order stale through the owner callbacks.
	b.Input("in").UnlinkFrom(a.Output("out"))
	assert.True(t, g.sortRequested)
	assert.Len(t, g.Order(ctx), len(first))
}
