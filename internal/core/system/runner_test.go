package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }

func (r recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner(&Clock{})
	r.Register(recorder{"cleanup", PhaseCleanup, &log})
	r.Register(recorder{"accel", PhaseUpdate, &log})
	r.Register(recorder{"input", PhaseInput, &log})
	r.Register(recorder{"move", PhaseUpdate, &log})
	r.Register(recorder{"collide", PhaseUpdate, &log})
	r.Register(recorder{"resolve", PhaseResolve, &log})

	r.Tick(33 * time.Millisecond)

	want := []string{"input", "accel", "move", "collide", "resolve", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
	if r.Clock().Now() != 33*time.Millisecond || r.Clock().Ticks() != 1 {
		t.Errorf("clock = %v/%d", r.Clock().Now(), r.Clock().Ticks())
	}
}

func TestRunnerTickPhase(t *testing.T) {
	var log []string
	r := NewRunner(&Clock{})
	r.Register(recorder{"input", PhaseInput, &log})
	r.Register(recorder{"accel", PhaseUpdate, &log})

	r.TickPhase(PhaseInput, 0)
	if len(log) != 1 || log[0] != "input" {
		t.Errorf("ran %v, want [input]", log)
	}
	if r.Clock().Ticks() != 0 {
		t.Error("TickPhase advanced the clock")
	}
}

func TestClockWholeSeconds(t *testing.T) {
	c := &Clock{}
	for i := 0; i < 60; i++ {
		c.Advance(33 * time.Millisecond)
	}
	// 60 * 33ms = 1.98s
	if got := c.WholeSeconds(0); got != 1 {
		t.Errorf("whole seconds = %d, want 1", got)
	}
}
