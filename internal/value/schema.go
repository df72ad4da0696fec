package value

import "math"

// Option is one entry of a property's option-label list, pairing a display
// label with the value it stands for.
type Option struct {
	Label string
	Value any
}

// Schema is the declaration-time contract of a property: its preset value,
// optional numeric constraints, UI option labels, enum table, and the
// multi-channel / event modifiers. A Schema is shared, never mutated after
// declaration; all per-property state lives on the property itself.
type Schema struct {
	// Preset is the declared default value. Its shape must match the
	// property's kind and element count (a scalar, or a slice for arrays).
	Preset any

	Min       *float64
	Max       *float64
	Step      *float64
	Precision *int

	// Options is the ordered label list for enumerated choices.
	Options []Option
	// Enum maps symbolic names to numeric values for enum-backed numbers.
	Enum map[string]float64

	// Multi marks the property as multi-channel: its value is a variable
	// length array of channels, each cloned from Preset.
	Multi bool
	// Event marks the property as a trigger rather than a value cell.
	Event bool

	// ObjectType is the declared subtype of an object-kind property.
	ObjectType *ObjectType
}

// ClampNumber applies the schema's min/max/step/precision constraints to a
// number. Constraints that are not declared pass the value through.
func (s *Schema) ClampNumber(f float64) float64 {
	if s == nil {
		return f
	}
	if s.Step != nil && *s.Step > 0 {
		base := 0.0
		if s.Min != nil {
			base = *s.Min
		}
		f = base + math.Round((f-base)/(*s.Step))*(*s.Step)
	}
	if s.Min != nil && f < *s.Min {
		f = *s.Min
	}
	if s.Max != nil && f > *s.Max {
		f = *s.Max
	}
	if s.Precision != nil && *s.Precision >= 0 {
		scale := math.Pow(10, float64(*s.Precision))
		f = math.Round(f*scale) / scale
	}
	return f
}

// ClonePreset returns a fresh copy of the preset, safe for the caller to
// mutate. Slices are copied one level deep; element values are scalars by
// construction.
func (s *Schema) ClonePreset(kind Kind, size int) any {
	if s == nil || s.Preset == nil {
		if size > 1 {
			return zeroSlice(kind, size)
		}
		return kind.Zero()
	}
	return CloneValue(s.Preset)
}

// CloneValue deep-copies a property value: slices get a fresh backing array,
// scalars are returned as-is.
func CloneValue(v any) any {
	switch vv := v.(type) {
	case []float64:
		out := make([]float64, len(vv))
		copy(out, vv)
		return out
	case []bool:
		out := make([]bool, len(vv))
		copy(out, vv)
		return out
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = CloneValue(e)
		}
		return out
	default:
		return v
	}
}

func zeroSlice(kind Kind, size int) any {
	switch kind {
	case Number:
		return make([]float64, size)
	case Bool:
		return make([]bool, size)
	case String:
		return make([]string, size)
	default:
		return make([]any, size)
	}
}
