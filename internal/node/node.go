// Package node defines Component, the linkable entity of the graph: a pair
// of property sets plus the evaluation hooks the engine drives once per
// cycle.
package node

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/propgraph/internal/property"
)

// TypeInfo is the static type metadata a component type declares at
// registration: its own tag and the ordered tags of its ancestors, nearest
// first. Registries index an entity under every one of these keys; nothing
// is ever introspected from a runtime type chain.
type TypeInfo struct {
	Tag       string
	Ancestors []string
}

// Keys returns the registry keys for this type: the exact tag followed by
// every ancestor tag.
func (t *TypeInfo) Keys() []string {
	keys := make([]string, 0, len(t.Ancestors)+1)
	keys = append(keys, t.Tag)
	keys = append(keys, t.Ancestors...)
	return keys
}

// SortRequester receives topology-change notifications from a component.
// The graph implements it; a component outside any graph drops them.
type SortRequester interface {
	RequestSort()
}

// Cycle is the per-cycle context handed to every hook: a monotonically
// increasing cycle number plus wall-clock time and delta in seconds.
type Cycle struct {
	Number int
	Time   float64
	Delta  float64
}

// UpdateFunc is an evaluation hook. It returns true when it mutated
// observable state, so callers can aggregate whether a redraw is warranted.
type UpdateFunc func(ctx context.Context, c *Component, cy *Cycle) bool

// Component is a linkable entity: a unique id, an input and an output
// property set, a changed flag aggregating "some input changed since last
// evaluation", and optional hooks for the three cycle phases.
type Component struct {
	id      string
	name    string
	info    *TypeInfo
	changed bool

	inputs  *property.Set
	outputs *property.Set

	scheduler SortRequester

	OnUpdate   UpdateFunc
	OnTick     UpdateFunc
	OnFinalize UpdateFunc
}

// New creates a component of the given type with a fresh id.
func New(info *TypeInfo, name string) *Component {
	c := &Component{id: uuid.NewString(), name: name, info: info}
	c.inputs = property.NewSet(property.RoleInput, c)
	c.outputs = property.NewSet(property.RoleOutput, c)
	return c
}

func (c *Component) ID() string      { return c.id }
func (c *Component) Name() string    { return c.name }
func (c *Component) Info() *TypeInfo { return c.info }

// SetID replaces the generated id. Only the document decoder uses it, to
// preserve identities across a round-trip.
func (c *Component) SetID(id string) { c.id = id }

// TypeKeys implements the registry's entity contract.
func (c *Component) TypeKeys() []string { return c.info.Keys() }

// In returns the input property set.
func (c *Component) In() *property.Set { return c.inputs }

// Out returns the output property set.
func (c *Component) Out() *property.Set { return c.outputs }

// Input is shorthand for In().MustGet.
func (c *Component) Input(key string) *property.Property { return c.inputs.MustGet(key) }

// Output is shorthand for Out().MustGet.
func (c *Component) Output(key string) *property.Property { return c.outputs.MustGet(key) }

// AddInput declares an input property during construction.
func (c *Component) AddInput(key string, p *property.Property) *property.Property {
	return c.inputs.Add(key, p)
}

// AddOutput declares an output property during construction.
func (c *Component) AddOutput(key string, p *property.Property) *property.Property {
	return c.outputs.Add(key, p)
}

// MarkChanged implements property.Owner: some input property changed since
// the last evaluation.
func (c *Component) MarkChanged() { c.changed = true }

func (c *Component) Changed() bool { return c.changed }

// ClearChanged drops the aggregate flag and the changed flag of every input
// property. Output properties keep theirs; they are settled when this
// component is processed as a link source.
func (c *Component) ClearChanged() {
	c.changed = false
	for _, p := range c.inputs.Properties() {
		p.ClearChanged()
	}
}

// RequestSort implements property.Owner by forwarding to the graph's
// scheduler. A detached component has nothing to invalidate.
func (c *Component) RequestSort() {
	if c.scheduler != nil {
		c.scheduler.RequestSort()
	}
}

// AttachScheduler wires the component to its graph. The graph calls this on
// add and detaches on remove.
func (c *Component) AttachScheduler(s SortRequester) { c.scheduler = s }

// Update runs the on-change hook.
func (c *Component) Update(ctx context.Context, cy *Cycle) bool {
	if c.OnUpdate == nil {
		return false
	}
	return c.OnUpdate(ctx, c, cy)
}

// Tick runs the every-cycle hook.
func (c *Component) Tick(ctx context.Context, cy *Cycle) bool {
	if c.OnTick == nil {
		return false
	}
	return c.OnTick(ctx, c, cy)
}

// Finalize runs the post-settlement hook.
func (c *Component) Finalize(ctx context.Context, cy *Cycle) bool {
	if c.OnFinalize == nil {
		return false
	}
	return c.OnFinalize(ctx, c, cy)
}

// Dispose removes every link touching the component's properties, from both
// endpoints atomically. The component is unusable afterwards except for
// inspection.
func (c *Component) Dispose() {
	for _, p := range c.inputs.Properties() {
		p.Unlink()
	}
	for _, p := range c.outputs.Properties() {
		p.Unlink()
	}
}

func (c *Component) String() string {
	return fmt.Sprintf("%s(%s)", c.info.Tag, c.name)
}
