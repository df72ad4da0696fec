// Package util registers the utility component types of the builtin library.
package util

import (
	"context"

	"github.com/vk/propgraph/internal/ctxlog"
	"github.com/vk/propgraph/internal/node"
	"github.com/vk/propgraph/internal/property"
	"github.com/vk/propgraph/internal/registry"
	"github.com/vk/propgraph/internal/value"
)

// Register adds the utility component types to the catalog.
func Register(cat *registry.Catalog) {
	cat.Register("util/counter", newCounter)
	cat.Register("util/print", newPrint)
}

var (
	counterInfo = &node.TypeInfo{Tag: "util/counter", Ancestors: []string{"util", "component"}}
	printInfo   = &node.TypeInfo{Tag: "util/print", Ancestors: []string{"util", "component"}}
)

// newCounter increments its output once per cycle, a minimal continuous
// (tick-driven) component.
func newCounter(name string) *node.Component {
	c := node.New(counterInfo, name)
	c.AddOutput("count", property.New(value.Number, 1, nil))
	c.OnTick = func(ctx context.Context, c *node.Component, cy *node.Cycle) bool {
		out := c.Output("count")
		out.SetValue(out.Float() + 1)
		return true
	}
	return c
}

// newPrint logs its input whenever it changes. Linking any kind into the
// string input exercises the conversion pipeline.
func newPrint(name string) *node.Component {
	c := node.New(printInfo, name)
	c.AddInput("value", property.New(value.String, 1, nil))
	c.OnUpdate = func(ctx context.Context, c *node.Component, cy *node.Cycle) bool {
		ctxlog.FromContext(ctx).Info("print", "component", c.Name(), "value", c.Input("value").Text(), "cycle", cy.Number)
		return false
	}
	return c
}
