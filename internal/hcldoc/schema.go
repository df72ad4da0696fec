// Package hcldoc loads declarative graph documents written in HCL: component
// blocks instantiate catalog types and seed property values, link blocks wire
// properties together by "name.key" address.
package hcldoc

import "github.com/hashicorp/hcl/v2"

// propertyBlock seeds one property of the enclosing component.
type propertyBlock struct {
	Key   string         `hcl:"key,label"`
	Value hcl.Expression `hcl:"value,optional"`
	Path  *string        `hcl:"path,optional"`
}

// componentBlock instantiates one component from the catalog.
type componentBlock struct {
	Type       string           `hcl:"type,label"`
	Name       string           `hcl:"name,label"`
	Properties []*propertyBlock `hcl:"property,block"`
}

// linkBlock wires a source property into a destination property. Addresses
// are "instance_name.property_key"; the optional indices address a single
// array element on either end.
type linkBlock struct {
	From     string `hcl:"from"`
	To       string `hcl:"to"`
	SrcIndex *int   `hcl:"src_index,optional"`
	DstIndex *int   `hcl:"dst_index,optional"`
}

// documentBody is the top-level structure of a graph document file.
type documentBody struct {
	Components []*componentBlock `hcl:"component,block"`
	Links      []*linkBlock      `hcl:"link,block"`
}
