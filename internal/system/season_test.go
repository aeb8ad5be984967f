package system

import (
	"testing"
	"time"

	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
	"go.uber.org/zap"
)

func TestSeasonFollowsClock(t *testing.T) {
	tu := rules.Default()
	tu.SeasonLength = 10 * time.Second
	clock := &coresys.Clock{}
	s := NewSeasonSystem(clock, &tu, zap.NewNop())

	tests := []struct {
		at    time.Duration
		want  Season
		scale float32
	}{
		{5 * time.Second, Spring, 1},
		{15 * time.Second, Summer, 1},
		{25 * time.Second, Autumn, 1},
		{35 * time.Second, Winter, tu.WinterFriction},
		{45 * time.Second, Spring, 1},
	}
	for _, tt := range tests {
		clock.Advance(tt.at - clock.Now())
		s.Update(0)
		if s.Current() != tt.want {
			t.Errorf("at %v: season %v, want %v", tt.at, s.Current(), tt.want)
		}
		if s.FrictionScale() != tt.scale {
			t.Errorf("at %v: friction scale %v, want %v", tt.at, s.FrictionScale(), tt.scale)
		}
	}
}
