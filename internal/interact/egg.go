package interact

import (
	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/core/event"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
	"github.com/go-gl/mathgl/mgl32"
)

// EggHandler resolves egg-vs-player contact. Pairs are (egg, player).
// Ownership moves only when the cooldown, counted in whole seconds of
// simulated time, has elapsed since the last transfer.
type EggHandler struct {
	deferred
	stores *component.Stores
	tuning *rules.Tuning
	clock  *coresys.Clock
	bus    *event.Bus
}

func NewEggHandler(stores *component.Stores, tuning *rules.Tuning, clock *coresys.Clock, bus *event.Bus) *EggHandler {
	return &EggHandler{
		deferred: deferred{
			members: ecs.NewEntitySet("egg-contact", stores.Position),
			pending: NewPairList(false),
		},
		stores: stores,
		tuning: tuning,
		clock:  clock,
		bus:    bus,
	}
}

// CoolingDown reports whether info's egg is still locked to its holder.
func (h *EggHandler) CoolingDown(info *component.EggInfo) bool {
	return h.clock.WholeSeconds(info.LastTransfer) < h.tuning.EggCooldownSeconds
}

func (h *EggHandler) Update() {
	st := h.stores
	for _, p := range h.pending.Pairs() {
		info, ok := st.Egg.Get(p.A)
		if !ok || !st.Slot.Has(p.B) {
			continue
		}
		if info.Held && info.Holder == p.B {
			continue
		}
		if h.CoolingDown(info) {
			continue
		}
		var from ecs.EntityID
		if info.Held {
			from = info.Holder
		}
		info.Holder = p.B
		info.Held = true
		info.LastTransfer = h.clock.Now()
		h.snapToHolder(p.A, p.B)
		event.Emit(h.bus, event.EggTransferred{Egg: p.A, From: from, To: p.B})
	}
	h.pending.Reset()
}

// snapToHolder moves the egg above its new holder at once, so the snapshot
// sent this tick already shows it there.
func (h *EggHandler) snapToHolder(egg, holder ecs.EntityID) {
	hp, ok := h.stores.Position.Get(holder)
	if !ok {
		return
	}
	if pos, ok := h.stores.Position.Get(egg); ok {
		pos.V = hp.V.Add(mgl32.Vec3{0, h.tuning.EggCarryHeight, 0})
	}
	if vel, ok := h.stores.Velocity.Get(egg); ok {
		vel.V = mgl32.Vec3{}
	}
}
