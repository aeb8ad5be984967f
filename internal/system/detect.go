package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/interact"
	"github.com/eggchase/server/internal/rules"
)

// DetectionSystem is the broad phase: it scans players, the egg and live
// projectiles for overlaps and queues pairs on the handlers. Nothing is
// mutated here. Phase 3 (Detect).
type DetectionSystem struct {
	stores     *component.Stores
	tuning     *rules.Tuning
	players    *ecs.EntitySet
	stacking   interact.Handler
	egg        interact.Handler
	projectile interact.Handler

	boxes []rules.Box
}

func NewDetectionSystem(stores *component.Stores, tuning *rules.Tuning, players *ecs.EntitySet, stacking, egg, projectile interact.Handler) *DetectionSystem {
	return &DetectionSystem{
		stores:     stores,
		tuning:     tuning,
		players:    players,
		stacking:   stacking,
		egg:        egg,
		projectile: projectile,
	}
}

func (s *DetectionSystem) Phase() coresys.Phase { return coresys.PhaseDetect }

func (s *DetectionSystem) Update(dt time.Duration) {
	ids := s.players.IDs()
	s.boxes = s.boxes[:0]
	for _, id := range ids {
		pos, _ := s.stores.Position.Get(id)
		s.boxes = append(s.boxes, s.tuning.PlayerBox(pos.V))
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if s.boxes[i].Overlaps(s.boxes[j]) {
				s.stacking.InsertPair(ids[i], ids[j])
			}
		}
	}

	s.detectEgg(ids)
	s.detectProjectiles(ids, float32(dt.Seconds()))
}

// detectEgg pairs the egg with players touching it. A held egg is
// stolen by touching its holder; a loose egg by walking into it.
func (s *DetectionSystem) detectEgg(ids []ecs.EntityID) {
	for _, egg := range s.egg.Members().IDs() {
		info, ok := s.stores.Egg.Get(egg)
		if !ok {
			continue
		}
		if info.Held {
			hi := s.indexOf(ids, info.Holder)
			if hi < 0 {
				continue
			}
			for i, p := range ids {
				if i != hi && s.boxes[i].Overlaps(s.boxes[hi]) {
					s.egg.InsertPair(egg, p)
				}
			}
			continue
		}
		pos, _ := s.stores.Position.Get(egg)
		for i, p := range ids {
			if s.boxes[i].Contains(pos.V, s.tuning.EggRadius) {
				s.egg.InsertPair(egg, p)
			}
		}
	}
}

// detectProjectiles sweeps each projectile over the distance it covered
// this tick, so a fast shot cannot skip through a player box.
func (s *DetectionSystem) detectProjectiles(ids []ecs.EntityID, sec float32) {
	for _, pr := range s.projectile.Members().IDs() {
		proj, ok := s.stores.Projectile.Get(pr)
		if !ok {
			continue
		}
		pos, _ := s.stores.Position.Get(pr)
		from := pos.V
		if vel, ok := s.stores.Velocity.Get(pr); ok {
			from = pos.V.Sub(vel.V.Mul(sec))
		}
		for i, p := range ids {
			if p != proj.Owner && s.boxes[i].IntersectsSegment(from, pos.V) {
				s.projectile.InsertPair(pr, p)
			}
		}
	}
}

func (s *DetectionSystem) indexOf(ids []ecs.EntityID, id ecs.EntityID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
