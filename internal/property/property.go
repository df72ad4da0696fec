// Package property implements the typed, observable value cells of a
// component graph, the converting links between them, and the keyed sets a
// component exposes them through.
//
// Propagation is eager: writing a property immediately pushes the converted
// value through every outgoing link, which in turn writes the destination
// property and so on down the chain. The evaluation engine relies on values
// being settled this way before a cycle's update phase begins.
package property

import (
	"fmt"
	"reflect"

	"github.com/vk/propgraph/internal/value"
)

// NoIndex marks a link endpoint that addresses the whole value rather than a
// single array element.
const NoIndex = -1

// Owner is the linkable entity a property set belongs to. Properties call
// back into it to aggregate the per-entity changed flag and to invalidate
// the evaluation order when topology changes.
type Owner interface {
	ID() string
	MarkChanged()
	RequestSort()
}

// Property is a typed value cell. Its kind, element count and schema are
// fixed at declaration; the value, changed flag and link lists mutate at
// runtime.
type Property struct {
	key    string
	path   string
	kind   value.Kind
	size   int
	schema *value.Schema
	custom bool

	val     any
	changed bool

	set      *Set
	incoming []*Link
	outgoing []*Link
}

// New declares a property of the given kind. size is the fixed element count
// (1 for scalars). The initial value is a clone of the schema preset, or the
// kind's null value when no preset is declared. Multi-channel properties
// start with zero channels.
func New(kind value.Kind, size int, schema *value.Schema) *Property {
	if schema == nil {
		schema = &value.Schema{}
	}
	if size < 1 {
		size = 1
	}
	p := &Property{kind: kind, size: size, schema: schema}
	if schema.Multi {
		p.val = []any{}
	} else {
		p.val = schema.ClonePreset(kind, size)
	}
	return p
}

func (p *Property) Key() string           { return p.key }
func (p *Property) Path() string          { return p.path }
func (p *Property) SetPath(path string)   { p.path = path }
func (p *Property) Kind() value.Kind      { return p.kind }
func (p *Property) Size() int             { return p.size }
func (p *Property) Schema() *value.Schema { return p.schema }
func (p *Property) Custom() bool          { return p.custom }
func (p *Property) Value() any            { return p.val }
func (p *Property) Changed() bool         { return p.changed }
func (p *Property) ClearChanged()         { p.changed = false }

// OwnerSet returns the property set this property is registered in, or nil
// for a free-standing property.
func (p *Property) OwnerSet() *Set { return p.set }

// Float returns the scalar number value. It is a convenience for number-kind
// scalars and returns 0 for anything else.
func (p *Property) Float() float64 {
	f, _ := p.val.(float64)
	return f
}

// Bool returns the scalar bool value.
func (p *Property) Bool() bool {
	b, _ := p.val.(bool)
	return b
}

// Text returns the scalar string value.
func (p *Property) Text() string {
	s, _ := p.val.(string)
	return s
}

// IsDefault reports whether the current value still equals the declared
// preset, which lets the document encoder omit it.
func (p *Property) IsDefault() bool {
	var def any
	if p.schema.Multi {
		def = []any{}
	} else {
		def = p.schema.ClonePreset(p.kind, p.size)
	}
	return reflect.DeepEqual(p.val, def)
}

// SetValue stores v, marks the property (and an input's owner) changed, and
// pushes through every outgoing link.
func (p *Property) SetValue(v any) {
	p.setValue(v, false)
}

// SetValueSilent stores v and propagates without touching the changed flags.
func (p *Property) SetValueSilent(v any) {
	p.setValue(v, true)
}

// CopyValue is SetValue with a defensive copy, so the caller's slice cannot
// alias the stored value.
func (p *Property) CopyValue(v any) {
	p.setValue(value.CloneValue(v), false)
}

// CopyValueSilent is SetValueSilent with a defensive copy.
func (p *Property) CopyValueSilent(v any) {
	p.setValue(value.CloneValue(v), true)
}

// Set re-emits the current value without changing it: the changed flags are
// raised and every outgoing link pushes again. It is used to force a refresh
// after structural changes such as in-place element writes.
func (p *Property) Set() {
	p.markChanged()
	p.propagate()
}

// Reset restores the declared preset and propagates it. Incoming links are
// not consulted; a linked property will simply be overwritten on the next
// push.
func (p *Property) Reset() {
	if p.schema.Multi {
		p.setValue([]any{}, false)
		return
	}
	p.setValue(p.schema.ClonePreset(p.kind, p.size), false)
}

// SetOptions replaces the option-label list. The shared schema is never
// mutated; the property gets a private copy with the new options, then
// re-emits so observers see the structural change.
func (p *Property) SetOptions(opts []value.Option) {
	s := *p.schema
	s.Options = opts
	p.schema = &s
	p.Set()
}

// SetMultiChannelCount grows or shrinks a multi-channel property to n
// channels. New channels are fresh clones of the preset. The resized value
// is stored through the normal write path, so it marks changed and pushes.
func (p *Property) SetMultiChannelCount(n int) {
	if !p.schema.Multi {
		panic(fmt.Sprintf("property %q is not multi-channel", p.key))
	}
	if n < 0 {
		n = 0
	}
	cur, _ := p.val.([]any)
	next := make([]any, n)
	for i := 0; i < n; i++ {
		if i < len(cur) {
			next[i] = cur[i]
		} else {
			next[i] = p.schema.ClonePreset(p.kind, p.size)
		}
	}
	p.setValue(next, false)
}

// IncomingLinks returns the ordered incoming link list.
func (p *Property) IncomingLinks() []*Link {
	out := make([]*Link, len(p.incoming))
	copy(out, p.incoming)
	return out
}

// OutgoingLinks returns the ordered outgoing link list.
func (p *Property) OutgoingLinks() []*Link {
	out := make([]*Link, len(p.outgoing))
	copy(out, p.outgoing)
	return out
}

// HasIncoming reports whether the property's value is link-driven.
func (p *Property) HasIncoming() bool { return len(p.incoming) > 0 }

func (p *Property) setValue(v any, silent bool) {
	p.val = v
	if !silent {
		p.markChanged()
	}
	p.propagate()
}

func (p *Property) markChanged() {
	p.changed = true
	if p.set != nil && p.set.role == RoleInput && p.set.owner != nil {
		p.set.owner.MarkChanged()
	}
}

func (p *Property) propagate() {
	for _, l := range p.outgoing {
		l.Push()
	}
}

func (p *Property) requestSort() {
	if p.set != nil && p.set.owner != nil {
		p.set.owner.RequestSort()
	}
}

func (p *Property) role() Role {
	if p.set == nil {
		return RoleNone
	}
	return p.set.role
}

func (p *Property) describe() string {
	if p.set != nil && p.set.owner != nil {
		return fmt.Sprintf("%s.%s", p.set.owner.ID(), p.key)
	}
	if p.key != "" {
		return p.key
	}
	return fmt.Sprintf("<%s property>", p.kind)
}
