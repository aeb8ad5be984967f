package system

import "github.com/eggchase/server/internal/core/ecs"

// members is the registration bookkeeping shared by entity systems. The
// constructor wires stores and builds the set; Register moves an entity
// into the active subset Update iterates.
type members struct {
	set *ecs.EntitySet
}

func (m *members) Register(id ecs.EntityID) error  { return m.set.Register(id) }
func (m *members) Deregister(id ecs.EntityID) bool { return m.set.Deregister(id) }
func (m *members) Members() *ecs.EntitySet         { return m.set }
