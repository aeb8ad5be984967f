package interact

import (
	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/rules"
	"github.com/go-gl/mathgl/mgl32"
)

// StackingHandler separates overlapping players. A falling player whose
// feet sink no deeper than StackDepth into another's head lands on it;
// any other overlap is a side collision and pushes both apart.
type StackingHandler struct {
	deferred
	stores *component.Stores
	tuning *rules.Tuning
}

func NewStackingHandler(stores *component.Stores, tuning *rules.Tuning) *StackingHandler {
	return &StackingHandler{
		deferred: deferred{
			members: ecs.NewEntitySet("stacking", stores.Position, stores.Velocity, stores.Jump),
			pending: NewPairList(true),
		},
		stores: stores,
		tuning: tuning,
	}
}

func (h *StackingHandler) Update() {
	for _, p := range h.pending.Pairs() {
		h.resolve(p.A, p.B)
	}
	h.pending.Reset()
}

func (h *StackingHandler) resolve(a, b ecs.EntityID) {
	st := h.stores
	pa, ok1 := st.Position.Get(a)
	pb, ok2 := st.Position.Get(b)
	va, ok3 := st.Velocity.Get(a)
	vb, ok4 := st.Velocity.Get(b)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return
	}
	// Earlier pairs may already have separated these two.
	if !h.tuning.PlayerBox(pa.V).Overlaps(h.tuning.PlayerBox(pb.V)) {
		return
	}

	upper := a
	pu, pl, vu := pa, pb, va
	if pb.V.Y() > pa.V.Y() {
		upper = b
		pu, pl, vu = pb, pa, vb
	}

	overlapY := pl.V.Y() + h.tuning.PlayerHeight - pu.V.Y()
	if pu.V.Y() > pl.V.Y() && overlapY <= h.tuning.StackDepth && vu.V.Y() <= 0 {
		pu.V[1] = pl.V.Y() + h.tuning.PlayerHeight
		vu.V[1] = 0
		if j, ok := st.Jump.Get(upper); ok {
			j.DoubleJumpUsed = 0
			j.Grounded = true
		}
		return
	}
	h.pushApart(pa, pb, va, vb)
}

// pushApart separates two side-colliding players along the horizontal box
// axis with the smaller overlap, so corner contacts are resolved too.
func (h *StackingHandler) pushApart(pa, pb *component.Position, va, vb *component.Velocity) {
	dx := pb.V.X() - pa.V.X()
	dz := pb.V.Z() - pa.V.Z()
	w := 2 * h.tuning.PlayerHalfWidth
	ox := w - abs32(dx)
	oz := w - abs32(dz)
	if ox <= 0 || oz <= 0 {
		return
	}

	n, pen := mgl32.Vec3{sign32(dx), 0, 0}, ox
	if oz < ox {
		n, pen = mgl32.Vec3{0, 0, sign32(dz)}, oz
	}
	half := n.Mul(pen / 2)
	pa.V = pa.V.Sub(half)
	pb.V = pb.V.Add(half)

	// Cancel the approaching part of the relative velocity, split evenly.
	rel := vb.V.Sub(va.V).Dot(n)
	if rel < 0 {
		va.V = va.V.Add(n.Mul(rel / 2))
		vb.V = vb.V.Sub(n.Mul(rel / 2))
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// sign32 treats zero as positive so coincident players still separate.
func sign32(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
