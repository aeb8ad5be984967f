package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
)

// AbilitySystem applies the dash: a horizontal impulse along the player's
// facing, triggered on the rising edge of the ability flag. Phase 2 (Update).
type AbilitySystem struct {
	members
	stores *component.Stores
	tuning *rules.Tuning
}

func NewAbilitySystem(stores *component.Stores, tuning *rules.Tuning) *AbilitySystem {
	return &AbilitySystem{
		members: members{set: ecs.NewEntitySet("ability", stores.Velocity, stores.Request, stores.Status)},
		stores:  stores,
		tuning:  tuning,
	}
}

func (s *AbilitySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AbilitySystem) Update(dt time.Duration) {
	for _, id := range s.set.IDs() {
		status, _ := s.stores.Status.Get(id)
		req, _ := s.stores.Request.Get(id)

		if status.DashCooldown > 0 {
			status.DashCooldown -= dt
			if status.DashCooldown < 0 {
				status.DashCooldown = 0
			}
		}

		pressed := req.Flags&component.ActionAbility != 0
		if pressed && !status.AbilityHeld && status.DashCooldown == 0 {
			vel, _ := s.stores.Velocity.Get(id)
			impulse := rules.Forward(req.Yaw).Mul(s.tuning.DashSpeed)
			vel.V[0] += impulse[0]
			vel.V[2] += impulse[2]
			status.DashCooldown = s.tuning.DashCooldown
		}
		status.AbilityHeld = pressed
	}
}
