// Package registry indexes live entities by id and by type, and announces
// additions and removals to listeners. Each graph instance constructs its
// own registry; there is no ambient global one.
package registry

import "fmt"

// Entity is anything the registry can index: it has a unique id and a static
// list of type keys (its exact type tag followed by every ancestor tag).
type Entity interface {
	ID() string
	TypeKeys() []string
}

// Listener observes registry mutations. For an entity indexed under several
// type keys, one notification fires per key, so a listener subscribed to a
// base type sees additions of every subtype.
type Listener interface {
	EntityAdded(typeKey string, e Entity)
	EntityRemoved(typeKey string, e Entity)
}

// Registry holds the id index and the per-type buckets for one graph
// instance.
type Registry struct {
	byID      map[string]Entity
	byType    map[string][]Entity
	listeners []Listener
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byID:   make(map[string]Entity),
		byType: make(map[string][]Entity),
	}
}

// AddListener subscribes l to add/remove notifications.
func (r *Registry) AddListener(l Listener) {
	r.listeners = append(r.listeners, l)
}

// Add indexes e under its id, its exact type key, and every ancestor key,
// firing one add notification per key. A duplicate id is a structural error
// and panics.
func (r *Registry) Add(e Entity) {
	if _, exists := r.byID[e.ID()]; exists {
		panic(fmt.Sprintf("entity with id %q already registered", e.ID()))
	}
	r.byID[e.ID()] = e
	for _, key := range e.TypeKeys() {
		r.byType[key] = append(r.byType[key], e)
		for _, l := range r.listeners {
			l.EntityAdded(key, e)
		}
	}
}

// Remove is the symmetric cleanup of Add. Removing an entity the registry
// does not contain is a structural error and panics.
func (r *Registry) Remove(e Entity) {
	if _, exists := r.byID[e.ID()]; !exists {
		panic(fmt.Sprintf("entity with id %q not registered", e.ID()))
	}
	delete(r.byID, e.ID())
	for _, key := range e.TypeKeys() {
		bucket := r.byType[key]
		found := false
		for i, other := range bucket {
			if other == e {
				r.byType[key] = append(bucket[:i], bucket[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			panic(fmt.Sprintf("entity %q missing from type bucket %q", e.ID(), key))
		}
		if len(r.byType[key]) == 0 {
			delete(r.byType, key)
		}
		for _, l := range r.listeners {
			l.EntityRemoved(key, e)
		}
	}
}

// ByID looks up an entity by id in O(1), advisory style.
func (r *Registry) ByID(id string) (Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// First returns the earliest-registered entity under the given type key, or
// nil when the bucket is empty.
func (r *Registry) First(typeKey string) Entity {
	bucket := r.byType[typeKey]
	if len(bucket) == 0 {
		return nil
	}
	return bucket[0]
}

// All returns every entity under the given type key, in registration order.
func (r *Registry) All(typeKey string) []Entity {
	bucket := r.byType[typeKey]
	out := make([]Entity, len(bucket))
	copy(out, bucket)
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int { return len(r.byID) }
