package system

import (
	"time"

	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
	"go.uber.org/zap"
)

type Season uint32

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	}
	return "unknown"
}

// SeasonSystem derives the current season from simulated time. It runs
// first in Update so acceleration sees this tick's surface. Phase 2 (Update).
type SeasonSystem struct {
	clock   *coresys.Clock
	tuning  *rules.Tuning
	current Season
	log     *zap.Logger
}

func NewSeasonSystem(clock *coresys.Clock, tuning *rules.Tuning, log *zap.Logger) *SeasonSystem {
	return &SeasonSystem{clock: clock, tuning: tuning, log: log}
}

func (s *SeasonSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SeasonSystem) Update(_ time.Duration) {
	next := Season((s.clock.Now() / s.tuning.SeasonLength) % 4)
	if next != s.current {
		s.log.Info("season changed", zap.Stringer("from", s.current), zap.Stringer("to", next))
		s.current = next
	}
}

func (s *SeasonSystem) Current() Season { return s.current }

// FrictionScale makes winter ground icy.
func (s *SeasonSystem) FrictionScale() float32 {
	if s.current == Winter {
		return s.tuning.WinterFriction
	}
	return 1
}
