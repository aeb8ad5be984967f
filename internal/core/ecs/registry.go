package ecs

import (
	"fmt"
	"sort"
)

// ComponentType identifies a component kind. Values are declared as
// constants next to the component definitions; there is no runtime counter.
type ComponentType uint8

// Removable is implemented by component stores and entity sets so the
// Registry can drop an entity from all of them on destroy.
type Removable interface {
	Discard(id EntityID)
}

// Registry is the per-type removal table plus the membership sets that must
// forget an entity when it is destroyed.
type Registry struct {
	stores  map[ComponentType]Removable
	members []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores:  make(map[ComponentType]Removable, 16),
		members: make([]Removable, 0, 16),
	}
}

// RegisterStore binds a store to its component type. Each type may only be
// bound once.
func (r *Registry) RegisterStore(t ComponentType, store Removable) error {
	if _, ok := r.stores[t]; ok {
		return fmt.Errorf("component type %d already registered", t)
	}
	r.stores[t] = store
	return nil
}

// RegisterMembers adds an entity set that should be pruned on destroy.
func (r *Registry) RegisterMembers(set Removable) {
	r.members = append(r.members, set)
}

// Remove discards one component type from id.
func (r *Registry) Remove(t ComponentType, id EntityID) {
	if s, ok := r.stores[t]; ok {
		s.Discard(id)
	}
}

// RemoveAll clears id from every membership set and then from every store,
// stores in ascending type order.
func (r *Registry) RemoveAll(id EntityID) {
	for _, m := range r.members {
		m.Discard(id)
	}
	types := make([]ComponentType, 0, len(r.stores))
	for t := range r.stores {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		r.stores[t].Discard(id)
	}
}
