package util

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

func TestCounterTicksEveryCycle(t *testing.T) {
	ctx := context.Background()
	g := newGraph(t)
	c, err := g.Spawn("util/counter", "c")
	require.NoError(t, err)

	g.Step(ctx)
	g.Step(ctx)
	g.Step(ctx)
	assert.Equal(t, 3.0, c.Output("count").Float())
}

func TestPrintAcceptsConvertedInput(t *testing.T) {
	ctx := context.Background()
	g := newGraph(t)
	counter, err := g.Spawn("util/counter", "c")
	require.NoError(t, err)
	printer, err := g.Spawn("util/print", "p")
	require.NoError(t, err)

	// Number output into string input exercises the conversion pipeline.
	_, err = printer.Input("value").LinkFrom(counter.Output("count"), property.NoIndex, property.NoIndex)
	require.NoError(t, err)

	g.Step(ctx)
	assert.Equal(t, "1", printer.Input("value").Text())
}
