package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
)

// CollisionSystem keeps entities above the ground plane. Landing zeroes
// downward velocity and refunds jumps. Phase 2 (Update).
type CollisionSystem struct {
	members
	stores *component.Stores
	tuning *rules.Tuning
}

func NewCollisionSystem(stores *component.Stores, tuning *rules.Tuning) *CollisionSystem {
	return &CollisionSystem{
		members: members{set: ecs.NewEntitySet("collision", stores.Position, stores.Velocity)},
		stores:  stores,
		tuning:  tuning,
	}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CollisionSystem) Update(_ time.Duration) {
	ground := s.tuning.GroundY
	for _, id := range s.set.IDs() {
		pos, _ := s.stores.Position.Get(id)
		vel, _ := s.stores.Velocity.Get(id)
		jump, hasJump := s.stores.Jump.Get(id)

		if pos.V[1] < ground {
			pos.V[1] = ground
			if vel.V[1] < 0 {
				vel.V[1] = 0
			}
			if hasJump {
				jump.DoubleJumpUsed = 0
				jump.Grounded = true
			}
			continue
		}
		if hasJump {
			jump.Grounded = pos.V[1] <= ground
		}
	}
}
