// Package math registers the arithmetic component types of the builtin
// library.
package math

import (
	"context"

	"github.com/vk/propgraph/internal/node"
	"github.com/vk/propgraph/internal/property"
	"github.com/vk/propgraph/internal/registry"
	"github.com/vk/propgraph/internal/value"
)

// Register adds the math component types to the catalog.
func Register(cat *registry.Catalog) {
	cat.Register("math/const", newConst)
	cat.Register("math/add", newAdd)
	cat.Register("math/scale", newScale)
}

var (
	constInfo = &node.TypeInfo{Tag: "math/const", Ancestors: []string{"math", "component"}}
	addInfo   = &node.TypeInfo{Tag: "math/add", Ancestors: []string{"math", "component"}}
	scaleInfo = &node.TypeInfo{Tag: "math/scale", Ancestors: []string{"math", "component"}}
)

// newConst emits its input value unchanged, giving documents a place to park
// a literal that other components can link from.
func newConst(name string) *node.Component {
	c := node.New(constInfo, name)
	c.AddInput("value", property.New(value.Number, 1, nil))
	c.AddOutput("out", property.New(value.Number, 1, nil))
	c.OnUpdate = func(ctx context.Context, c *node.Component, cy *node.Cycle) bool {
		c.Output("out").SetValue(c.Input("value").Float())
		return true
	}
	return c
}

func newAdd(name string) *node.Component {
	c := node.New(addInfo, name)
	c.AddInput("a", property.New(value.Number, 1, nil))
	c.AddInput("b", property.New(value.Number, 1, nil))
	c.AddOutput("sum", property.New(value.Number, 1, nil))
	c.OnUpdate = func(ctx context.Context, c *node.Component, cy *node.Cycle) bool {
		c.Output("sum").SetValue(c.Input("a").Float() + c.Input("b").Float())
		return true
	}
	return c
}

func newScale(name string) *node.Component {
	c := node.New(scaleInfo, name)
	c.AddInput("value", property.New(value.Number, 1, nil))
	c.AddInput("factor", property.New(value.Number, 1, &value.Schema{Preset: float64(1)}))
	c.AddOutput("out", property.New(value.Number, 1, nil))
	c.OnUpdate = func(ctx context.Context, c *node.Component, cy *node.Cycle) bool {
		c.Output("out").SetValue(c.Input("value").Float() * c.Input("factor").Float())
		return true
	}
	return c
}
