package doc

import (
	"github.com/vk/propgraph/internal/graph"
	"github.com/vk/propgraph/internal/property"
	"github.com/vk/propgraph/internal/value"
)

// Encode captures a graph into its document form.
func Encode(g *graph.Graph) *Document {
	d := &Document{}
	for _, c := range g.Components() {
		cd := &Component{
			ID:         c.ID(),
			Type:       c.Info().Tag,
			Name:       c.Name(),
			Properties: make(map[string]*Property),
		}
		encodeSet(cd, c.In(), property.RoleInput)
		encodeSet(cd, c.Out(), property.RoleOutput)
		if len(cd.Properties) == 0 {
			cd.Properties = nil
		}
		d.Components = append(d.Components, cd)
	}
	return d
}

func encodeSet(cd *Component, s *property.Set, role property.Role) {
	for _, p := range s.Properties() {
		rec := &Property{}
		if p.Path() != "" {
			path := p.Path()
			rec.Path = &path
		}
		if p.Custom() {
			rec.Schema = encodeSchema(p, role)
		}
		if shouldEncodeValue(p) {
			rec.Value = value.CloneValue(p.Value())
		}
		for _, l := range p.OutgoingLinks() {
			dstSet := l.Dst().OwnerSet()
			if dstSet == nil || dstSet.Owner() == nil {
				continue
			}
			ref := &LinkRef{ID: dstSet.Owner().ID(), Key: l.Dst().Key()}
			if i := l.SrcIndex(); i != property.NoIndex {
				ref.SrcIndex = &i
			}
			if i := l.DstIndex(); i != property.NoIndex {
				ref.DstIndex = &i
			}
			rec.Links = append(rec.Links, ref)
		}
		if !rec.empty() {
			cd.Properties[p.Key()] = rec
		}
	}
}

// shouldEncodeValue: a link-driven value will be re-pushed when links are
// restored, a preset value is implied by the declaration, and object
// references have no document form.
func shouldEncodeValue(p *property.Property) bool {
	if p.HasIncoming() || p.IsDefault() {
		return false
	}
	if p.Kind() == value.Object || p.Schema().Event {
		return false
	}
	return true
}

func encodeSchema(p *property.Property, role property.Role) *Schema {
	s := p.Schema()
	sd := &Schema{
		Kind:      p.Kind().String(),
		Preset:    value.CloneValue(s.Preset),
		Min:       s.Min,
		Max:       s.Max,
		Step:      s.Step,
		Precision: s.Precision,
		Multi:     s.Multi,
		Event:     s.Event,
	}
	if p.Size() > 1 {
		sd.Size = p.Size()
	}
	if role == property.RoleOutput {
		sd.Role = "output"
	} else {
		sd.Role = "input"
	}
	if s.ObjectType != nil {
		sd.ObjectType = s.ObjectType.Tag
	}
	return sd
}
