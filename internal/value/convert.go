package value

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Convert transforms one scalar element from a source kind into a destination
// kind. A Convert is resolved once, at link-creation time, from the static
// kinds of the two endpoints; pushing through a link never re-negotiates the
// conversion.
type Convert func(any) any

// Resolve picks the conversion for a link whose source elements are srcKind
// and whose destination elements are dstKind, constrained by the destination
// schema. Kind pairs outside the conversion table return an error, which
// callers surface as a link-incompatibility at creation time.
func Resolve(src, dst Kind, dstSchema *Schema) (Convert, error) {
	switch {
	case src == Number && dst == Number:
		if dstSchema != nil && (dstSchema.Min != nil || dstSchema.Max != nil || dstSchema.Step != nil || dstSchema.Precision != nil) {
			return func(v any) any { return dstSchema.ClampNumber(asFloat(v)) }, nil
		}
		return identity, nil
	case src == String && dst == String:
		return identity, nil
	case src == Bool && dst == Bool:
		return identity, nil
	case src == Object && dst == Object:
		// Subtype compatibility is checked before the link exists; at push
		// time the reference passes through untouched.
		return identity, nil
	case src == Number && dst == String:
		return numberToString, nil
	case src == String && dst == Number:
		if dstSchema != nil && (dstSchema.Min != nil || dstSchema.Max != nil || dstSchema.Step != nil || dstSchema.Precision != nil) {
			return func(v any) any { return dstSchema.ClampNumber(asFloat(stringToNumber(v))) }, nil
		}
		return stringToNumber, nil
	case src == Bool && dst == Number:
		return boolToNumber, nil
	case src == Number && dst == Bool:
		return numberToBool, nil
	default:
		return nil, fmt.Errorf("values of kind %s are not convertible to kind %s", src, dst)
	}
}

func identity(v any) any { return v }

// numberToString formats through cty so the textual form matches what the
// document loader produces for the same number.
func numberToString(v any) any {
	out, err := convert.Convert(cty.NumberFloatVal(asFloat(v)), cty.String)
	if err != nil {
		return ""
	}
	return out.AsString()
}

// stringToNumber parses through cty's conversion table. Unparseable text
// yields NaN, mirroring a numeric parse failure rather than halting the push.
func stringToNumber(v any) any {
	s, _ := v.(string)
	out, err := convert.Convert(cty.StringVal(s), cty.Number)
	if err != nil {
		return math.NaN()
	}
	f, _ := out.AsBigFloat().Float64()
	return f
}

func boolToNumber(v any) any {
	if b, _ := v.(bool); b {
		return float64(1)
	}
	return float64(0)
}

func numberToBool(v any) any {
	return asFloat(v) != 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
