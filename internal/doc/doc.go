// Package doc implements the persisted graph format: per component, a map
// from property key to an optional record carrying the property's path,
// declared schema (custom properties only), current value (unless link-driven
// or still at its preset), and outgoing links as id/key references.
//
// The same document model serializes to JSON for interchange and to msgpack
// for compact binary snapshots.
package doc

// Document is the root of a persisted graph.
type Document struct {
	Components []*Component `json:"components" msgpack:"components"`
}

// Component is one serialized entity. Properties holds only the keys that
// have something to say; a fully default property is absent.
type Component struct {
	ID         string               `json:"id" msgpack:"id"`
	Type       string               `json:"type" msgpack:"type"`
	Name       string               `json:"name,omitempty" msgpack:"name,omitempty"`
	Properties map[string]*Property `json:"properties,omitempty" msgpack:"properties,omitempty"`
}

// Property is the optional per-key record.
type Property struct {
	Path   *string    `json:"path,omitempty" msgpack:"path,omitempty"`
	Schema *Schema    `json:"schema,omitempty" msgpack:"schema,omitempty"`
	Value  any        `json:"value,omitempty" msgpack:"value,omitempty"`
	Links  []*LinkRef `json:"links,omitempty" msgpack:"links,omitempty"`
}

func (p *Property) empty() bool {
	return p.Path == nil && p.Schema == nil && p.Value == nil && len(p.Links) == 0
}

// Schema is emitted only for custom (runtime-appended) properties, which the
// decoder must recreate before values and links can land on them.
type Schema struct {
	Kind       string   `json:"kind" msgpack:"kind"`
	Size       int      `json:"size,omitempty" msgpack:"size,omitempty"`
	Role       string   `json:"role,omitempty" msgpack:"role,omitempty"`
	Preset     any      `json:"preset,omitempty" msgpack:"preset,omitempty"`
	Min        *float64 `json:"min,omitempty" msgpack:"min,omitempty"`
	Max        *float64 `json:"max,omitempty" msgpack:"max,omitempty"`
	Step       *float64 `json:"step,omitempty" msgpack:"step,omitempty"`
	Precision  *int     `json:"precision,omitempty" msgpack:"precision,omitempty"`
	Multi      bool     `json:"multi,omitempty" msgpack:"multi,omitempty"`
	Event      bool     `json:"event,omitempty" msgpack:"event,omitempty"`
	ObjectType string   `json:"objectType,omitempty" msgpack:"objectType,omitempty"`
}

// LinkRef references a link's destination: the target entity by id and the
// target property by key, plus the optional element indices.
type LinkRef struct {
	ID       string `json:"id" msgpack:"id"`
	Key      string `json:"key" msgpack:"key"`
	SrcIndex *int   `json:"srcIndex,omitempty" msgpack:"srcIndex,omitempty"`
	DstIndex *int   `json:"dstIndex,omitempty" msgpack:"dstIndex,omitempty"`
}
