// Package value defines the closed set of value kinds a property can carry,
// the declaration-time schema attached to every property, and the conversion
// pipeline used by links that cross kinds.
//
// A property's kind is decided once, when the property is declared. It is
// never inferred from a live value, so two properties of the same kind are
// always byte-compatible regardless of what has been written into them.
package value

import "fmt"

// Kind is the scalar element type of a property. The set is closed: every
// property is exactly one of these, with an independent scalar/array shape
// and multi-channel modifier carried by the property itself.
type Kind int

const (
	Invalid Kind = iota
	Number
	Bool
	String
	Object
)

// String returns the lower-case keyword for the kind, matching the keywords
// used in persisted documents.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// KindFromString parses a document keyword back into a Kind.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "number":
		return Number, nil
	case "bool":
		return Bool, nil
	case "string":
		return String, nil
	case "object":
		return Object, nil
	default:
		return Invalid, fmt.Errorf("unknown value kind %q", s)
	}
}

// Zero returns the null value for a scalar of the given kind.
func (k Kind) Zero() any {
	switch k {
	case Number:
		return float64(0)
	case Bool:
		return false
	case String:
		return ""
	case Object:
		return nil
	default:
		return nil
	}
}

// ObjectType is the declared subtype tag of an object-kind property, together
// with its ordered ancestor tags (nearest first). The table is declared
// explicitly where the object type is defined; nothing is introspected from
// runtime values.
type ObjectType struct {
	Tag       string
	Ancestors []string
}

// AssignableTo reports whether a value of the receiver's type may flow into a
// slot declared as dst. dst must name the same type or one of the receiver's
// ancestors. A nil dst accepts any object; a nil source only satisfies a nil
// destination.
func (o *ObjectType) AssignableTo(dst *ObjectType) bool {
	if dst == nil {
		return true
	}
	if o == nil {
		return false
	}
	if o.Tag == dst.Tag {
		return true
	}
	for _, a := range o.Ancestors {
		if a == dst.Tag {
			return true
		}
	}
	return false
}
