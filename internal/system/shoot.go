package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Spawner creates projectile entities and registers them with every
// system and handler that simulates them.
type Spawner interface {
	SpawnProjectile(owner ecs.EntityID, origin, velocity mgl32.Vec3) (ecs.EntityID, error)
}

// ShootSystem fires a projectile whenever the shoot flag is set and the
// player's weapon has cooled down. Phase 2 (Update).
type ShootSystem struct {
	members
	stores  *component.Stores
	tuning  *rules.Tuning
	spawner Spawner
	log     *zap.Logger
}

func NewShootSystem(stores *component.Stores, tuning *rules.Tuning, spawner Spawner, log *zap.Logger) *ShootSystem {
	return &ShootSystem{
		members: members{set: ecs.NewEntitySet("shoot", stores.Position, stores.Request, stores.Status)},
		stores:  stores,
		tuning:  tuning,
		spawner: spawner,
		log:     log,
	}
}

func (s *ShootSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ShootSystem) Update(dt time.Duration) {
	for _, id := range s.set.IDs() {
		status, _ := s.stores.Status.Get(id)
		if status.ShootCooldown > 0 {
			status.ShootCooldown -= dt
			if status.ShootCooldown < 0 {
				status.ShootCooldown = 0
			}
		}
		req, _ := s.stores.Request.Get(id)
		if req.Flags&component.ActionShoot == 0 || status.ShootCooldown > 0 {
			continue
		}
		status.ShootCooldown = s.tuning.ShootCooldown

		// Copy before spawning: adding the projectile's Position may
		// reallocate the store and invalidate pointers into it.
		pos, _ := s.stores.Position.Get(id)
		feet := pos.V
		aim := rules.Aim(req.Yaw, req.Pitch)
		origin := feet.Add(mgl32.Vec3{0, s.tuning.EyeHeight, 0})

		if _, err := s.spawner.SpawnProjectile(id, origin, aim.Mul(s.tuning.ProjectileSpeed)); err != nil {
			s.log.Warn("projectile spawn failed", zap.Stringer("owner", id), zap.Error(err))
		}
	}
}
