package property

import "fmt"

// Role distinguishes a component's input set from its output set. Link
// direction rules key off it: only outputs may sit upstream of a link, only
// inputs downstream.
type Role int

const (
	RoleNone Role = iota
	RoleInput
	RoleOutput
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	default:
		return "none"
	}
}

// Set is the ordered, keyed collection of properties a component exposes on
// one side. Every property belongs to at most one set, under a key that is
// unique within it.
type Set struct {
	role  Role
	owner Owner
	props []*Property
	index map[string]*Property
}

// NewSet creates an empty property set for the given owner and role.
func NewSet(role Role, owner Owner) *Set {
	return &Set{role: role, owner: owner, index: make(map[string]*Property)}
}

func (s *Set) Role() Role   { return s.role }
func (s *Set) Owner() Owner { return s.owner }
func (s *Set) Len() int     { return len(s.props) }

// Add registers p at the end of the set under key. A duplicate key or a
// property already owned by a set is a structural error and panics.
func (s *Set) Add(key string, p *Property) *Property {
	return s.insert(len(s.props), key, p)
}

// Insert registers p at position at. See Add.
func (s *Set) Insert(at int, key string, p *Property) *Property {
	if at < 0 || at > len(s.props) {
		panic(fmt.Sprintf("insert position %d out of range for %s set of length %d", at, s.role, len(s.props)))
	}
	return s.insert(at, key, p)
}

// AddCustom registers a runtime-appended property. Custom properties carry
// their declared schema into serialized documents, where construction-time
// properties do not.
func (s *Set) AddCustom(key string, p *Property) *Property {
	p.custom = true
	return s.Add(key, p)
}

func (s *Set) insert(at int, key string, p *Property) *Property {
	if _, exists := s.index[key]; exists {
		panic(fmt.Sprintf("duplicate property key %q in %s set", key, s.role))
	}
	if p.set != nil {
		panic(fmt.Sprintf("property %q already belongs to a set", p.key))
	}
	p.key = key
	p.set = s
	s.props = append(s.props, nil)
	copy(s.props[at+1:], s.props[at:])
	s.props[at] = p
	s.index[key] = p
	return p
}

// Remove detaches the property under key from the set. It refuses to remove
// a property that still has links; a missing key is a structural error and
// panics.
func (s *Set) Remove(key string) error {
	p, ok := s.index[key]
	if !ok {
		panic(fmt.Sprintf("no property %q in %s set", key, s.role))
	}
	if len(p.incoming) != 0 || len(p.outgoing) != 0 {
		return fmt.Errorf("property %q still has links; unlink before removing", key)
	}
	for i, e := range s.props {
		if e == p {
			s.props = append(s.props[:i], s.props[i+1:]...)
			break
		}
	}
	delete(s.index, key)
	p.set = nil
	p.key = ""
	return nil
}

// Get returns the property under key, advisory style.
func (s *Set) Get(key string) (*Property, bool) {
	p, ok := s.index[key]
	return p, ok
}

// MustGet returns the property under key and panics when the key is unknown.
func (s *Set) MustGet(key string) *Property {
	p, ok := s.index[key]
	if !ok {
		owner := "detached"
		if s.owner != nil {
			owner = s.owner.ID()
		}
		panic(fmt.Sprintf("no property %q in %s set of %s", key, s.role, owner))
	}
	return p
}

// Properties returns the set's properties in declaration order.
func (s *Set) Properties() []*Property {
	out := make([]*Property, len(s.props))
	copy(out, s.props)
	return out
}

// Keys returns the property keys in declaration order.
func (s *Set) Keys() []string {
	out := make([]string, len(s.props))
	for i, p := range s.props {
		out[i] = p.key
	}
	return out
}
