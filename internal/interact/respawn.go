package interact

import (
	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/core/event"
	"github.com/eggchase/server/internal/rules"
	"github.com/go-gl/mathgl/mgl32"
)

// Respawner puts a knocked-out player back at its spawn point and drops
// the egg where it fell.
type Respawner struct {
	stores *component.Stores
	tuning *rules.Tuning
	bus    *event.Bus
}

func NewRespawner(stores *component.Stores, tuning *rules.Tuning, bus *event.Bus) *Respawner {
	return &Respawner{stores: stores, tuning: tuning, bus: bus}
}

func (r *Respawner) Respawn(id ecs.EntityID) {
	st := r.stores
	slot, ok := st.Slot.Get(id)
	if !ok {
		return
	}
	var fell mgl32.Vec3
	if pos, ok := st.Position.Get(id); ok {
		fell = pos.V
		pos.V = slot.Spawn
	}
	r.dropEgg(id, fell)

	if vel, ok := st.Velocity.Get(id); ok {
		vel.V = mgl32.Vec3{}
	}
	if hp, ok := st.Health.Get(id); ok {
		hp.Curr = hp.Max
	}
	if j, ok := st.Jump.Get(id); ok {
		*j = component.JumpInfo{Grounded: true}
	}
	if o, ok := st.Orientation.Get(id); ok {
		o.Yaw, o.Pitch = slot.SpawnYaw, 0
	}
}

func (r *Respawner) dropEgg(holder ecs.EntityID, at mgl32.Vec3) {
	st := r.stores
	st.Egg.Each(func(egg ecs.EntityID, info *component.EggInfo) {
		if !info.Held || info.Holder != holder {
			return
		}
		info.Held = false
		info.Holder = 0
		if pos, ok := st.Position.Get(egg); ok {
			pos.V = mgl32.Vec3{at[0], r.tuning.GroundY, at[2]}
		}
		event.Emit(r.bus, event.EggDropped{Egg: egg, Holder: holder})
	})
}
