package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyRegistered = errors.New("entity already registered")
	ErrMissingComponent  = errors.New("entity lacks a required component")
)

// Requirement is satisfied by any store that can answer membership.
type Requirement interface {
	Name() string
	Has(id EntityID) bool
}

// EntitySet is the ordered subset of entities a system or handler acts on.
// Iteration follows registration order; removal keeps the order of the rest.
type EntitySet struct {
	name     string
	ids      []EntityID
	index    map[EntityID]struct{}
	requires []Requirement
}

func NewEntitySet(name string, requires ...Requirement) *EntitySet {
	return &EntitySet{
		name:     name,
		ids:      make([]EntityID, 0, 16),
		index:    make(map[EntityID]struct{}, 16),
		requires: requires,
	}
}

// Register adds id. Double registration and missing required components
// are both rejected.
func (s *EntitySet) Register(id EntityID) error {
	if _, ok := s.index[id]; ok {
		return fmt.Errorf("%s register %s: %w", s.name, id, ErrAlreadyRegistered)
	}
	for _, req := range s.requires {
		if !req.Has(id) {
			return fmt.Errorf("%s register %s (%s): %w", s.name, id, req.Name(), ErrMissingComponent)
		}
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return nil
}

// Deregister removes id, reporting whether it was a member.
func (s *EntitySet) Deregister(id EntityID) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

func (s *EntitySet) Discard(id EntityID) { s.Deregister(id) }

func (s *EntitySet) Contains(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns members in registration order. The slice is owned by the set.
func (s *EntitySet) IDs() []EntityID { return s.ids }

func (s *EntitySet) Len() int { return len(s.ids) }

func (s *EntitySet) Name() string { return s.name }
