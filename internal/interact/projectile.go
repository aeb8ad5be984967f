package interact

import (
	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/core/event"
	"github.com/eggchase/server/internal/rules"
)

// ProjectileHandler resolves projectile-vs-player hits. Pairs are
// (projectile, player). A projectile damages at most one player; later
// pairs for an already spent projectile, or against a player already
// knocked out this tick, are skipped.
type ProjectileHandler struct {
	deferred
	stores  *component.Stores
	tuning  *rules.Tuning
	world   *ecs.World
	respawn *Respawner
	bus     *event.Bus
	spent   map[ecs.EntityID]struct{}
	downed  map[ecs.EntityID]struct{}
}

func NewProjectileHandler(stores *component.Stores, tuning *rules.Tuning, world *ecs.World, respawn *Respawner, bus *event.Bus) *ProjectileHandler {
	return &ProjectileHandler{
		deferred: deferred{
			members: ecs.NewEntitySet("projectile-hits", stores.Position),
			pending: NewPairList(false),
		},
		stores:  stores,
		tuning:  tuning,
		world:   world,
		respawn: respawn,
		bus:     bus,
		spent:   make(map[ecs.EntityID]struct{}),
		downed:  make(map[ecs.EntityID]struct{}),
	}
}

func (h *ProjectileHandler) Update() {
	st := h.stores
	for _, p := range h.pending.Pairs() {
		proj, ok := st.Projectile.Get(p.A)
		if !ok {
			continue
		}
		if _, done := h.spent[p.A]; done || h.world.Pending(p.A) {
			continue
		}
		if p.B == proj.Owner {
			continue
		}
		if _, down := h.downed[p.B]; down {
			continue
		}
		hp, ok := st.Health.Get(p.B)
		if !ok {
			continue
		}
		owner := proj.Owner
		h.spent[p.A] = struct{}{}
		h.world.MarkForDestruction(p.A)

		hp.Curr -= h.tuning.ProjectileDamage
		if hp.Curr <= 0 {
			h.downed[p.B] = struct{}{}
			h.respawn.Respawn(p.B)
			event.Emit(h.bus, event.PlayerKilled{Victim: p.B, Killer: owner})
		}
	}
	h.pending.Reset()
	clear(h.spent)
	clear(h.downed)
}
