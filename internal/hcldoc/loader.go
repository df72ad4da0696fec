package hcldoc

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/propgraph/internal/ctxlog"
	"github.com/vk/propgraph/internal/graph"
	"github.com/vk/propgraph/internal/node"
	"github.com/vk/propgraph/internal/property"
	"github.com/vk/propgraph/internal/registry"
	"github.com/vk/propgraph/internal/value"
)

// LoadFile parses an HCL graph document from disk and builds the graph it
// describes against the given catalog.
func LoadFile(ctx context.Context, path string, catalog *registry.Catalog) (*graph.Graph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Load(ctx, src, path, catalog)
}

// Load parses HCL source and builds the described graph. Components are
// instantiated first, property values second, links last, mirroring the
// two-pass document decoder.
func Load(ctx context.Context, src []byte, filename string, catalog *registry.Catalog) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", filename, diags)
	}

	var body documentBody
	if diags := gohcl.DecodeBody(file.Body, nil, &body); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", filename, diags)
	}

	g := graph.New(catalog)
	for _, cb := range body.Components {
		c, err := g.Spawn(cb.Type, cb.Name)
		if err != nil {
			return nil, err
		}
		for _, pb := range cb.Properties {
			if err := applyProperty(c, pb); err != nil {
				return nil, fmt.Errorf("component %q: %w", cb.Name, err)
			}
		}
	}
	logger.Debug("Document components instantiated.", "count", len(body.Components))

	for _, lb := range body.Links {
		if err := applyLink(g, lb); err != nil {
			return nil, err
		}
	}
	logger.Debug("Document links resolved.", "count", len(body.Links))
	return g, nil
}

func applyProperty(c *node.Component, pb *propertyBlock) error {
	p, ok := c.In().Get(pb.Key)
	if !ok {
		if p, ok = c.Out().Get(pb.Key); !ok {
			return fmt.Errorf("no property %q", pb.Key)
		}
	}
	if pb.Path != nil {
		p.SetPath(*pb.Path)
	}
	if pb.Value == nil {
		return nil
	}
	cv, diags := pb.Value.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("property %q: %w", pb.Key, diags)
	}
	if cv.IsNull() {
		return nil
	}
	v, err := value.FromCty(p.Kind(), p.Size(), cv)
	if err != nil {
		return fmt.Errorf("property %q: %w", pb.Key, err)
	}
	p.SetValue(v)
	return nil
}

func applyLink(g *graph.Graph, lb *linkBlock) error {
	src, err := resolveAddress(g, lb.From)
	if err != nil {
		return fmt.Errorf("link from %q: %w", lb.From, err)
	}
	dst, err := resolveAddress(g, lb.To)
	if err != nil {
		return fmt.Errorf("link to %q: %w", lb.To, err)
	}
	srcIdx, dstIdx := property.NoIndex, property.NoIndex
	if lb.SrcIndex != nil {
		srcIdx = *lb.SrcIndex
	}
	if lb.DstIndex != nil {
		dstIdx = *lb.DstIndex
	}
	if _, err := dst.LinkFrom(src, srcIdx, dstIdx); err != nil {
		return fmt.Errorf("link %q -> %q: %w", lb.From, lb.To, err)
	}
	return nil
}

// resolveAddress finds a property by its "instance_name.property_key"
// address. Sources resolve against outputs first, then inputs; destinations
// the other way around would never match an output anyway, since outputs
// reject incoming links.
func resolveAddress(g *graph.Graph, addr string) (*property.Property, error) {
	name, key, ok := strings.Cut(addr, ".")
	if !ok {
		return nil, fmt.Errorf("address must be \"name.key\"")
	}
	c, ok := g.Find(name)
	if !ok {
		return nil, fmt.Errorf("no component named %q", name)
	}
	if p, ok := c.Out().Get(key); ok {
		return p, nil
	}
	if p, ok := c.In().Get(key); ok {
		return p, nil
	}
	return nil, fmt.Errorf("component %q has no property %q", name, key)
}
