package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrComponentExists = errors.New("component already present")
	ErrNoComponent     = errors.New("component not present")
)

// ComponentStore is dense storage for one component type. Values live in an
// insertion-ordered slice; removal moves the last value into the freed slot,
// so slots are not stable across removals and pointers returned by Get are
// only valid until the next Add or Remove on the same store.
type ComponentStore[T any] struct {
	name   string
	data   []T
	owners []EntityID       // slot -> entity
	slots  map[EntityID]int // entity -> slot
}

func NewComponentStore[T any](name string) *ComponentStore[T] {
	return &ComponentStore[T]{
		name:   name,
		data:   make([]T, 0, 16),
		owners: make([]EntityID, 0, 16),
		slots:  make(map[EntityID]int, 16),
	}
}

func (s *ComponentStore[T]) Name() string { return s.name }

// Add attaches v to id and returns the slot it was stored in.
func (s *ComponentStore[T]) Add(id EntityID, v T) (int, error) {
	if _, ok := s.slots[id]; ok {
		return 0, fmt.Errorf("%s add %s: %w", s.name, id, ErrComponentExists)
	}
	slot := len(s.data)
	s.data = append(s.data, v)
	s.owners = append(s.owners, id)
	s.slots[id] = slot
	return slot, nil
}

// Remove detaches id's component using swap-remove.
func (s *ComponentStore[T]) Remove(id EntityID) error {
	slot, ok := s.slots[id]
	if !ok {
		return fmt.Errorf("%s remove %s: %w", s.name, id, ErrNoComponent)
	}
	last := len(s.data) - 1
	if slot != last {
		moved := s.owners[last]
		s.data[slot] = s.data[last]
		s.owners[slot] = moved
		s.slots[moved] = slot
	}
	var zero T
	s.data[last] = zero
	s.data = s.data[:last]
	s.owners = s.owners[:last]
	delete(s.slots, id)
	return nil
}

// Discard removes id's component if present. Used for bulk cleanup on destroy.
func (s *ComponentStore[T]) Discard(id EntityID) {
	if s.Has(id) {
		_ = s.Remove(id)
	}
}

func (s *ComponentStore[T]) Get(id EntityID) (*T, bool) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, false
	}
	return &s.data[slot], true
}

func (s *ComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.slots[id]
	return ok
}

// Slot returns the slot currently holding id's component.
func (s *ComponentStore[T]) Slot(id EntityID) (int, bool) {
	slot, ok := s.slots[id]
	return slot, ok
}

func (s *ComponentStore[T]) Len() int {
	return len(s.data)
}

// All returns the dense backing slice. Do not retain it across Add/Remove.
func (s *ComponentStore[T]) All() []T {
	return s.data
}

// Entities returns the owner of each slot, parallel to All.
func (s *ComponentStore[T]) Entities() []EntityID {
	return s.owners
}

// Each visits every component in slot order.
func (s *ComponentStore[T]) Each(fn func(EntityID, *T)) {
	for i := range s.data {
		fn(s.owners[i], &s.data[i])
	}
}
