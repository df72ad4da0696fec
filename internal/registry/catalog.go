package registry

import (
	"fmt"

	"github.com/vk/propgraph/internal/node"
)

// Factory constructs a component instance with the given instance name.
type Factory func(name string) *node.Component

// Catalog maps component type tags to their factories. A catalog is built
// explicitly per running graph and passed to whatever needs type resolution
// (document decoding, the HCL loader); nothing resolves types through global
// state.
type Catalog struct {
	factories map[string]Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// Register adds a component type. Registering a tag twice is a programming
// error and panics.
func (c *Catalog) Register(typeTag string, f Factory) {
	if _, exists := c.factories[typeTag]; exists {
		panic(fmt.Sprintf("component type %q already registered", typeTag))
	}
	c.factories[typeTag] = f
}

// Has reports whether a type tag is registered, advisory style.
func (c *Catalog) Has(typeTag string) bool {
	_, ok := c.factories[typeTag]
	return ok
}

// New instantiates a component of the given type. An unknown tag is a
// lookup-miss error.
func (c *Catalog) New(typeTag, name string) (*node.Component, error) {
	f, ok := c.factories[typeTag]
	if !ok {
		return nil, fmt.Errorf("unknown component type %q", typeTag)
	}
	return f(name), nil
}
