package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
)

// MovementSystem integrates position from velocity (semi-implicit Euler:
// velocity was already updated this tick). Phase 2 (Update).
type MovementSystem struct {
	members
	stores *component.Stores
}

func NewMovementSystem(stores *component.Stores) *MovementSystem {
	return &MovementSystem{
		members: members{set: ecs.NewEntitySet("movement", stores.Position, stores.Velocity)},
		stores:  stores,
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := float32(dt.Seconds())
	for _, id := range s.set.IDs() {
		pos, _ := s.stores.Position.Get(id)
		vel, _ := s.stores.Velocity.Get(id)
		pos.V = pos.V.Add(vel.V.Mul(sec))
	}
}
