package math

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/propgraph/internal/graph"
	"github.com/vk/propgraph/internal/property"
	"github.com/vk/propgraph/internal/registry"
)

func newGraph(t *testing.T) *graph.Graph {
	t.Helper()
	cat := registry.NewCatalog()
	Register(cat)
	return graph.New(cat)
}

func TestConst(t *testing.T) {
	ctx := context.Background()
	g := newGraph(t)
	c, err := g.Spawn("math/const", "c")
	require.NoError(t, err)

	c.Input("value").SetValue(4.0)
	g.Step(ctx)
	assert.Equal(t, 4.0, c.Output("out").Float())
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	g := newGraph(t)
	a, err := g.Spawn("math/add", "a")
	require.NoError(t, err)

	a.Input("a").SetValue(2.0)
	a.Input("b").SetValue(3.0)
	g.Step(ctx)
	assert.Equal(t, 5.0, a.Output("sum").Float())
}

func TestScaleDefaultsToUnity(t *testing.T) {
	ctx := context.Background()
	g := newGraph(t)
	s, err := g.Spawn("math/scale", "s")
	require.NoError(t, err)

	s.Input("value").SetValue(7.0)
	g.Step(ctx)
	assert.Equal(t, 7.0, s.Output("out").Float())

	s.Input("factor").SetValue(3.0)
	g.Step(ctx)
	assert.Equal(t, 21.0, s.Output("out").Float())
}

func TestChainSettlesInOneCycle(t *testing.T) {
	ctx := context.Background()
	g := newGraph(t)
	c, err := g.Spawn("math/const", "c")
	require.NoError(t, err)
	s, err := g.Spawn("math/scale", "s")
	require.NoError(t, err)
	a, err := g.Spawn("math/add", "a")
	require.NoError(t, err)

	_, err = s.Input("value").LinkFrom(c.Output("out"), property.NoIndex, property.NoIndex)
	require.NoError(t, err)
	_, err = a.Input("a").LinkFrom(s.Output("out"), property.NoIndex, property.NoIndex)
	require.NoError(t, err)

	c.Input("value").SetValue(5.0)
	s.Input("factor").SetValue(2.0)
	a.Input("b").SetValue(1.0)

	g.Step(ctx)
	assert.Equal(t, 11.0, a.Output("sum").Float())
}

func TestTypeKeys(t *testing.T) {
	g := newGraph(t)
	_, err := g.Spawn("math/add", "a")
	require.NoError(t, err)
	assert.Len(t, g.Registry().All("math"), 1)
	assert.Len(t, g.Registry().All("component"), 1)
}
