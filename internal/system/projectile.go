package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
)

// ProjectileSystem expires projectiles whose lifetime ran out or that fell
// below the ground plane. Destruction is deferred to Cleanup. Phase 2 (Update).
type ProjectileSystem struct {
	members
	stores *component.Stores
	tuning *rules.Tuning
	world  *ecs.World
}

func NewProjectileSystem(stores *component.Stores, tuning *rules.Tuning, world *ecs.World) *ProjectileSystem {
	return &ProjectileSystem{
		members: members{set: ecs.NewEntitySet("projectile_lifetime", stores.Projectile, stores.Position)},
		stores:  stores,
		tuning:  tuning,
		world:   world,
	}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ProjectileSystem) Update(dt time.Duration) {
	for _, id := range s.set.IDs() {
		proj, _ := s.stores.Projectile.Get(id)
		pos, _ := s.stores.Position.Get(id)
		proj.Remaining -= dt
		if proj.Remaining <= 0 || pos.V[1] < s.tuning.GroundY {
			s.world.MarkForDestruction(id)
		}
	}
}
