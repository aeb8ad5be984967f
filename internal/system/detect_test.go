package system

import (
	"testing"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/core/event"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/interact"
	"github.com/go-gl/mathgl/mgl32"
)

func TestDetectionSweepsFastProjectiles(t *testing.T) {
	f := newFixture(t)
	bus := event.NewBus()
	stacking := interact.NewStackingHandler(f.stores, &f.tuning)
	egg := interact.NewEggHandler(f.stores, &f.tuning, &coresys.Clock{}, bus)
	hits := interact.NewProjectileHandler(f.stores, &f.tuning, f.world, interact.NewRespawner(f.stores, &f.tuning, bus), bus)

	shooter := f.player(t, 0, mgl32.Vec3{-5, 0, 0})
	victim := f.player(t, 1, mgl32.Vec3{})
	bystander := f.player(t, 2, mgl32.Vec3{5, 0, 0})

	// One tick moves the shot 2 units, twice the box width. It ends past
	// the victim without ever sampling a point inside its box.
	shot := f.world.CreateEntity()
	f.stores.Position.Add(shot, component.Position{V: mgl32.Vec3{0.8, 1, 0}})
	f.stores.Velocity.Add(shot, component.Velocity{V: mgl32.Vec3{40, 0, 0}})
	f.stores.Projectile.Add(shot, component.Projectile{Owner: shooter, Origin: mgl32.Vec3{-5, 1, 0}})

	for _, id := range []ecs.EntityID{shooter, victim, bystander} {
		if err := stacking.Register(id); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []ecs.EntityID{shooter, victim, bystander, shot} {
		if err := hits.Register(id); err != nil {
			t.Fatal(err)
		}
	}

	NewDetectionSystem(f.stores, &f.tuning, stacking.Members(), stacking, egg, hits).Update(dt)

	pending := hits.Pending()
	if len(pending) != 1 || pending[0].A != shot || pending[0].B != victim {
		t.Fatalf("pending hits = %+v, want shot against victim only", pending)
	}
}
