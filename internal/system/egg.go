package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
	"github.com/go-gl/mathgl/mgl32"
)

// EggCarrySystem keeps a held egg floating above its holder's head.
// Phase 2 (Update), registered after movement and collision.
type EggCarrySystem struct {
	members
	stores *component.Stores
	tuning *rules.Tuning
}

func NewEggCarrySystem(stores *component.Stores, tuning *rules.Tuning) *EggCarrySystem {
	return &EggCarrySystem{
		members: members{set: ecs.NewEntitySet("egg_carry", stores.Egg, stores.Position)},
		stores:  stores,
		tuning:  tuning,
	}
}

func (s *EggCarrySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EggCarrySystem) Update(_ time.Duration) {
	for _, id := range s.set.IDs() {
		info, _ := s.stores.Egg.Get(id)
		if !info.Held {
			continue
		}
		holder, ok := s.stores.Position.Get(info.Holder)
		if !ok {
			continue
		}
		at := holder.V.Add(mgl32.Vec3{0, s.tuning.EggCarryHeight, 0})
		pos, _ := s.stores.Position.Get(id)
		pos.V = at
		if vel, ok := s.stores.Velocity.Get(id); ok {
			vel.V = mgl32.Vec3{}
		}
	}
}
