package value

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FromCty converts an evaluated document expression into the native
// representation for a property of the given kind and element count.
// Object-kind properties have no literal form and are rejected.
func FromCty(kind Kind, size int, v cty.Value) (any, error) {
	if kind == Object {
		return nil, fmt.Errorf("object values cannot be written from a document expression")
	}
	if size > 1 {
		if !v.Type().IsTupleType() && !v.Type().IsListType() {
			return nil, fmt.Errorf("property expects %d elements, got non-collection %s", size, v.Type().FriendlyName())
		}
		if v.LengthInt() != size {
			return nil, fmt.Errorf("property expects %d elements, got %d", size, v.LengthInt())
		}
		switch kind {
		case Number:
			out := make([]float64, 0, size)
			for it := v.ElementIterator(); it.Next(); {
				_, ev := it.Element()
				f, err := ctyScalar(Number, ev)
				if err != nil {
					return nil, err
				}
				out = append(out, f.(float64))
			}
			return out, nil
		case Bool:
			out := make([]bool, 0, size)
			for it := v.ElementIterator(); it.Next(); {
				_, ev := it.Element()
				b, err := ctyScalar(Bool, ev)
				if err != nil {
					return nil, err
				}
				out = append(out, b.(bool))
			}
			return out, nil
		case String:
			out := make([]string, 0, size)
			for it := v.ElementIterator(); it.Next(); {
				_, ev := it.Element()
				s, err := ctyScalar(String, ev)
				if err != nil {
					return nil, err
				}
				out = append(out, s.(string))
			}
			return out, nil
		}
	}
	return ctyScalar(kind, v)
}

func ctyScalar(kind Kind, v cty.Value) (any, error) {
	var want cty.Type
	switch kind {
	case Number:
		want = cty.Number
	case Bool:
		want = cty.Bool
	case String:
		want = cty.String
	default:
		return nil, fmt.Errorf("kind %s has no cty representation", kind)
	}
	cv, err := convert.Convert(v, want)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to %s: %w", v.Type().FriendlyName(), kind, err)
	}
	switch kind {
	case Number:
		f, _ := cv.AsBigFloat().Float64()
		return f, nil
	case Bool:
		return cv.True(), nil
	default:
		return cv.AsString(), nil
	}
}
