package doc

import (
	"context"
	"fmt"

	"github.com/vk/propgraph/internal/ctxlog"
	"github.com/vk/propgraph/internal/graph"
	"github.com/vk/propgraph/internal/node"
	"github.com/vk/propgraph/internal/property"
	"github.com/vk/propgraph/internal/registry"
	"github.com/vk/propgraph/internal/value"
)

// Decode rebuilds a graph from its document form. It is two-pass: the first
// pass instantiates every component from the catalog, recreates custom
// properties and applies serialized values; the second pass resolves link
// references against the completed id table, because a link may point at a
// component that appears later in the document.
func Decode(ctx context.Context, d *Document, catalog *registry.Catalog) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	g := graph.New(catalog)

	// Pass 1: structure and values.
	for _, cd := range d.Components {
		c, err := catalog.New(cd.Type, cd.Name)
		if err != nil {
			return nil, err
		}
		if cd.ID != "" {
			c.SetID(cd.ID)
		}
		g.Add(c)

		for key, rec := range cd.Properties {
			if rec.Schema != nil {
				if err := addCustomProperty(c, key, rec.Schema); err != nil {
					return nil, err
				}
			}
			p, ok := findProperty(c, key)
			if !ok {
				return nil, fmt.Errorf("component %q has no property %q", cd.Name, key)
			}
			if rec.Path != nil {
				p.SetPath(*rec.Path)
			}
			if rec.Value != nil {
				p.CopyValue(coerceValue(p.Kind(), p.Size(), p.Schema().Multi, rec.Value))
			}
		}
	}
	logger.Debug("Document structure pass complete.", "components", len(d.Components))

	// Pass 2: links, now that every referenced id exists.
	for _, cd := range d.Components {
		src, _ := g.Registry().ByID(cd.ID)
		srcComp, _ := src.(*node.Component)
		if srcComp == nil {
			// Components without a serialized id were just added; find by name.
			if c, ok := g.Find(cd.Name); ok {
				srcComp = c
			} else {
				return nil, fmt.Errorf("component %q vanished between passes", cd.Name)
			}
		}
		for key, rec := range cd.Properties {
			for _, ref := range rec.Links {
				if err := resolveLink(g, srcComp, key, ref); err != nil {
					return nil, err
				}
			}
		}
	}
	logger.Debug("Document link pass complete.")
	return g, nil
}

func resolveLink(g *graph.Graph, srcComp *node.Component, srcKey string, ref *LinkRef) error {
	srcProp, ok := findProperty(srcComp, srcKey)
	if !ok {
		return fmt.Errorf("link source %s.%s does not exist", srcComp.Name(), srcKey)
	}
	target, ok := g.Registry().ByID(ref.ID)
	if !ok {
		return fmt.Errorf("link from %s.%s references unknown entity %q", srcComp.Name(), srcKey, ref.ID)
	}
	dstComp, ok := target.(*node.Component)
	if !ok {
		return fmt.Errorf("link target %q is not a component", ref.ID)
	}
	dstProp, ok := findProperty(dstComp, ref.Key)
	if !ok {
		return fmt.Errorf("link target %s.%s does not exist", dstComp.Name(), ref.Key)
	}
	srcIdx, dstIdx := property.NoIndex, property.NoIndex
	if ref.SrcIndex != nil {
		srcIdx = *ref.SrcIndex
	}
	if ref.DstIndex != nil {
		dstIdx = *ref.DstIndex
	}
	_, err := dstProp.LinkFrom(srcProp, srcIdx, dstIdx)
	return err
}

func addCustomProperty(c *node.Component, key string, sd *Schema) error {
	kind, err := value.KindFromString(sd.Kind)
	if err != nil {
		return err
	}
	size := sd.Size
	if size < 1 {
		size = 1
	}
	schema := &value.Schema{
		Preset:    coerceValue(kind, size, false, sd.Preset),
		Min:       sd.Min,
		Max:       sd.Max,
		Step:      sd.Step,
		Precision: sd.Precision,
		Multi:     sd.Multi,
		Event:     sd.Event,
	}
	if sd.Preset == nil {
		schema.Preset = nil
	}
	if sd.ObjectType != "" {
		schema.ObjectType = &value.ObjectType{Tag: sd.ObjectType}
	}
	p := property.New(kind, size, schema)
	if sd.Role == "output" {
		c.Out().AddCustom(key, p)
	} else {
		c.In().AddCustom(key, p)
	}
	return nil
}

func findProperty(c *node.Component, key string) (*property.Property, bool) {
	if p, ok := c.In().Get(key); ok {
		return p, true
	}
	return c.Out().Get(key)
}

// coerceValue normalizes codec-native representations (JSON float64/[]any,
// msgpack int64) into the property value representation for the kind.
func coerceValue(kind value.Kind, size int, multi bool, v any) any {
	if v == nil {
		return nil
	}
	if multi {
		raw, _ := v.([]any)
		out := make([]any, len(raw))
		for i, ch := range raw {
			out[i] = coerceValue(kind, size, false, ch)
		}
		return out
	}
	if size > 1 {
		raw, ok := v.([]any)
		if !ok {
			return value.CloneValue(v)
		}
		switch kind {
		case value.Number:
			out := make([]float64, len(raw))
			for i, e := range raw {
				out[i] = coerceNumber(e)
			}
			return out
		case value.Bool:
			out := make([]bool, len(raw))
			for i, e := range raw {
				out[i], _ = e.(bool)
			}
			return out
		case value.String:
			out := make([]string, len(raw))
			for i, e := range raw {
				out[i], _ = e.(string)
			}
			return out
		default:
			return value.CloneValue(raw)
		}
	}
	if kind == value.Number {
		return coerceNumber(v)
	}
	return v
}

func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}
