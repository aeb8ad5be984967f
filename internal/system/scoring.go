package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/core/event"
	coresys "github.com/eggchase/server/internal/core/system"
)

// ScoringSystem awards the egg holder one point per whole second of carry.
// Phase 2 (Update).
type ScoringSystem struct {
	members
	stores *component.Stores
}

func NewScoringSystem(stores *component.Stores) *ScoringSystem {
	return &ScoringSystem{
		members: members{set: ecs.NewEntitySet("scoring", stores.Egg)},
		stores:  stores,
	}
}

func (s *ScoringSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScoringSystem) Update(dt time.Duration) {
	for _, id := range s.set.IDs() {
		info, _ := s.stores.Egg.Get(id)
		if !info.Held {
			continue
		}
		score, ok := s.stores.Score.Get(info.Holder)
		if !ok {
			continue
		}
		score.Carry += dt
		for score.Carry >= time.Second {
			score.Carry -= time.Second
			score.Points++
		}
	}
}

// AwardKills subscribes to PlayerKilled and credits the shooter.
func AwardKills(bus *event.Bus, stores *component.Stores, points int32) {
	event.Subscribe(bus, func(ev event.PlayerKilled) {
		if score, ok := stores.Score.Get(ev.Killer); ok {
			score.Points += points
		}
	})
}
