package world

import (
	"github.com/eggchase/server/internal/net/packet"
)

// Snapshot builds the SERVER_TO_CLIENT state for this tick.
func (w *World) Snapshot() packet.Snapshot {
	st := w.stores
	snap := packet.Snapshot{EggHolder: -1, Season: uint32(w.season.Current())}
	for s, id := range w.players {
		if pos, ok := st.Position.Get(id); ok {
			snap.Positions[s] = pos.V
		}
		if o, ok := st.Orientation.Get(id); ok {
			snap.Yaws[s], snap.Pitches[s] = o.Yaw, o.Pitch
		}
		if hp, ok := st.Health.Get(id); ok {
			snap.Health[s] = hp.Curr
		}
		if sc, ok := st.Score.Get(id); ok {
			snap.Scores[s] = sc.Points
		}
		snap.ClientIDs[s] = w.clients[s]
	}
	if pos, ok := st.Position.Get(w.egg); ok {
		snap.EggPos = pos.V
	}
	if info, ok := st.Egg.Get(w.egg); ok && info.Held {
		if slot, ok := st.Slot.Get(info.Holder); ok {
			snap.EggHolder = int32(slot.Index)
		}
	}
	return snap
}

// Trails lists live projectiles as segments from muzzle to current
// position, in store order, up to MaxTrails.
func (w *World) Trails() packet.BulletTrails {
	st := w.stores
	var out packet.BulletTrails
	ids := st.Projectile.Entities()
	for i, proj := range st.Projectile.All() {
		if w.ecs.Pending(ids[i]) {
			continue
		}
		pos, ok := st.Position.Get(ids[i])
		if !ok {
			continue
		}
		shooter := int32(-1)
		if slot, ok := st.Slot.Get(proj.Owner); ok {
			shooter = int32(slot.Index)
		}
		if !out.Append(packet.Trail{Start: proj.Origin, End: pos.V, Shooter: shooter}) {
			break
		}
	}
	return out
}

// Scores returns points by slot.
func (w *World) Scores() [packet.MaxPlayers]int32 {
	var out [packet.MaxPlayers]int32
	for s, id := range w.players {
		if sc, ok := w.stores.Score.Get(id); ok {
			out[s] = sc.Points
		}
	}
	return out
}
