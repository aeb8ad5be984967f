package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in the order they were registered.
type Runner struct {
	systems []System
	sorted  bool
	clock   *Clock
}

func NewRunner(clock *Clock) *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		clock:   clock,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick advances the clock by dt and runs every system once.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	r.clock.Advance(dt)
	for _, s := range r.systems {
		s.Update(dt)
	}
}

// TickPhase runs only the systems of one phase without advancing the clock.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

func (r *Runner) Clock() *Clock { return r.clock }

func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
