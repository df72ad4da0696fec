package property

import (
	"fmt"

	"github.com/vk/propgraph/internal/value"
)

// Link is a directed edge from a source property to a destination property.
// The conversion between the two kinds is resolved exactly once, when the
// link is created; Push applies it without further negotiation. Either
// endpoint may address a single array element via its index.
type Link struct {
	src, dst           *Property
	srcIndex, dstIndex int
	convert            value.Convert
}

func (l *Link) Src() *Property { return l.src }
func (l *Link) Dst() *Property { return l.dst }
func (l *Link) SrcIndex() int  { return l.srcIndex }
func (l *Link) DstIndex() int  { return l.dstIndex }

// CanLinkFrom reports whether src may be linked into p. It returns
// (false, nil) for ordinary incompatibilities: direction, event/multi
// mismatch, shape mismatch, incompatible object subtypes, non-convertible
// element kinds. Outright misuse, i.e. an element index on a non-array
// endpoint or one beyond the endpoint's length, returns a non-nil error.
func (p *Property) CanLinkFrom(src *Property, srcIndex, dstIndex int) (bool, error) {
	if src == nil {
		return false, fmt.Errorf("link source is nil")
	}
	// Direction: only outputs feed links, only inputs consume them. A
	// property outside any set has no role and is allowed on either end.
	if p.role() == RoleOutput {
		return false, nil
	}
	if src.role() == RoleInput {
		return false, nil
	}
	// Event triggers and multi-channel properties only pair with their own
	// kind of endpoint.
	if p.schema.Event != src.schema.Event {
		return false, nil
	}
	if p.schema.Multi != src.schema.Multi {
		return false, nil
	}
	if srcIndex != NoIndex {
		if src.size == 1 {
			return false, fmt.Errorf("source element index %d on non-array property %s", srcIndex, src.describe())
		}
		if srcIndex < 0 || srcIndex >= src.size {
			return false, fmt.Errorf("source element index %d out of range for property %s of length %d", srcIndex, src.describe(), src.size)
		}
	}
	if dstIndex != NoIndex {
		if p.size == 1 {
			return false, fmt.Errorf("destination element index %d on non-array property %s", dstIndex, p.describe())
		}
		if dstIndex < 0 || dstIndex >= p.size {
			return false, fmt.Errorf("destination element index %d out of range for property %s of length %d", dstIndex, p.describe(), p.size)
		}
	}
	srcScalar := src.size == 1 || srcIndex != NoIndex
	dstScalar := p.size == 1 || dstIndex != NoIndex
	if srcScalar != dstScalar {
		return false, nil
	}
	if !srcScalar && src.size != p.size {
		return false, nil
	}
	if src.kind == value.Object && p.kind == value.Object {
		if !src.schema.ObjectType.AssignableTo(p.schema.ObjectType) {
			return false, nil
		}
	}
	if _, err := value.Resolve(src.kind, p.kind, p.schema); err != nil {
		return false, nil
	}
	return true, nil
}

// LinkFrom creates a link from src into p, registers it on both endpoints,
// invalidates the evaluation order, and pushes once so the destination
// reflects the source immediately. Creation is all-or-nothing: on any
// failure both endpoints are left untouched.
func (p *Property) LinkFrom(src *Property, srcIndex, dstIndex int) (*Link, error) {
	ok, err := p.CanLinkFrom(src, srcIndex, dstIndex)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("cannot link %s -> %s: incompatible endpoints", src.describe(), p.describe())
	}
	conv, err := value.Resolve(src.kind, p.kind, p.schema)
	if err != nil {
		return nil, err
	}
	l := &Link{src: src, dst: p, srcIndex: srcIndex, dstIndex: dstIndex, convert: conv}
	src.outgoing = append(src.outgoing, l)
	p.incoming = append(p.incoming, l)
	src.requestSort()
	p.requestSort()
	l.Push()
	return l, nil
}

// LinkTo creates a link from p into dst. See LinkFrom.
func (p *Property) LinkTo(dst *Property, srcIndex, dstIndex int) (*Link, error) {
	if dst == nil {
		return nil, fmt.Errorf("link destination is nil")
	}
	return dst.LinkFrom(p, srcIndex, dstIndex)
}

// UnlinkFrom removes the link whose source is src. Removing a link that does
// not exist is a structural error and panics.
func (p *Property) UnlinkFrom(src *Property) {
	for _, l := range p.incoming {
		if l.src == src {
			l.remove()
			return
		}
	}
	panic(fmt.Sprintf("no link from %s into %s", src.describe(), p.describe()))
}

// UnlinkTo removes the link whose destination is dst. Removing a link that
// does not exist is a structural error and panics.
func (p *Property) UnlinkTo(dst *Property) {
	for _, l := range p.outgoing {
		if l.dst == dst {
			l.remove()
			return
		}
	}
	panic(fmt.Sprintf("no link from %s into %s", p.describe(), dst.describe()))
}

// Unlink removes every link touching this property, incoming and outgoing.
// Both endpoint lists must end up consistent; a dangling half is fatal.
func (p *Property) Unlink() {
	for _, l := range p.IncomingLinks() {
		l.remove()
	}
	for _, l := range p.OutgoingLinks() {
		l.remove()
	}
	if len(p.incoming) != 0 || len(p.outgoing) != 0 {
		panic(fmt.Sprintf("dangling links left on %s after unlink", p.describe()))
	}
}

// Push is the link's sole runtime effect: read the source value (or element),
// apply the resolved conversion, write the destination. Element writes call
// Set on the destination only when the element actually differs, so a stream
// of identical pushes does not fan out further.
func (l *Link) Push() {
	var v any
	if l.srcIndex != NoIndex {
		v = elementAt(l.src.val, l.srcIndex)
	} else {
		v = l.src.val
	}

	if l.dstIndex != NoIndex {
		if writeElement(l.dst, l.dstIndex, l.convert(v)) {
			l.dst.Set()
		}
		return
	}

	if l.dst.schema.Multi {
		l.dst.setValue(convertChannels(v, l.convert), false)
		return
	}
	if l.dst.size > 1 && l.srcIndex == NoIndex {
		l.dst.setValue(convertSlice(v, l.dst.kind, l.dst.size, l.convert), false)
		return
	}
	l.dst.setValue(l.convert(v), false)
}

// remove detaches the link from both endpoints. Membership in both lists is
// an invariant; a one-sided link panics.
func (l *Link) remove() {
	l.src.outgoing = spliceLink(l.src.outgoing, l, "outgoing", l.src)
	l.dst.incoming = spliceLink(l.dst.incoming, l, "incoming", l.dst)
	l.src.requestSort()
	l.dst.requestSort()
	// An object input with no remaining driver falls back to its null preset.
	if l.dst.kind == value.Object && len(l.dst.incoming) == 0 {
		l.dst.Reset()
	}
}

func spliceLink(links []*Link, l *Link, side string, p *Property) []*Link {
	for i, e := range links {
		if e == l {
			return append(links[:i], links[i+1:]...)
		}
	}
	panic(fmt.Sprintf("link missing from %s list of %s", side, p.describe()))
}

func elementAt(v any, i int) any {
	switch vv := v.(type) {
	case []float64:
		return vv[i]
	case []bool:
		return vv[i]
	case []string:
		return vv[i]
	case []any:
		return vv[i]
	default:
		return v
	}
}

// writeElement mutates one element in place and reports whether it differed.
func writeElement(p *Property, i int, e any) bool {
	switch vv := p.val.(type) {
	case []float64:
		f, _ := e.(float64)
		if vv[i] == f {
			return false
		}
		vv[i] = f
	case []bool:
		b, _ := e.(bool)
		if vv[i] == b {
			return false
		}
		vv[i] = b
	case []string:
		s, _ := e.(string)
		if vv[i] == s {
			return false
		}
		vv[i] = s
	case []any:
		if vv[i] == e {
			return false
		}
		vv[i] = e
	default:
		return false
	}
	return true
}

// convertSlice copies a whole-array value element-wise into the destination
// kind's representation.
func convertSlice(v any, dst value.Kind, size int, conv value.Convert) any {
	switch dst {
	case value.Number:
		out := make([]float64, size)
		for i := 0; i < size; i++ {
			out[i], _ = conv(elementAt(v, i)).(float64)
		}
		return out
	case value.Bool:
		out := make([]bool, size)
		for i := 0; i < size; i++ {
			out[i], _ = conv(elementAt(v, i)).(bool)
		}
		return out
	case value.String:
		out := make([]string, size)
		for i := 0; i < size; i++ {
			out[i], _ = conv(elementAt(v, i)).(string)
		}
		return out
	default:
		out := make([]any, size)
		for i := 0; i < size; i++ {
			out[i] = conv(elementAt(v, i))
		}
		return out
	}
}

// convertChannels copies a multi-channel value, converting scalar channels
// through the link's conversion and cloning array channels.
func convertChannels(v any, conv value.Convert) []any {
	src, _ := v.([]any)
	out := make([]any, len(src))
	for i, ch := range src {
		switch ch.(type) {
		case []float64, []bool, []string, []any:
			out[i] = value.CloneValue(ch)
		default:
			out[i] = conv(ch)
		}
	}
	return out
}
