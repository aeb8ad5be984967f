package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: accept sessions, drain client records
	PhasePreUpdate              // 1: dispatch last tick's events
	PhaseUpdate                 // 2: movement, physics, gameplay
	PhaseDetect                 // 3: broad interaction detection
	PhaseResolve                // 4: event handlers commit deferred pairs
	PhaseOutput                 // 5: build + broadcast snapshot
	PhasePersist                // 6: periodic score save
	PhaseCleanup                // 7: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "Input"
	case PhasePreUpdate:
		return "PreUpdate"
	case PhaseUpdate:
		return "Update"
	case PhaseDetect:
		return "Detect"
	case PhaseResolve:
		return "Resolve"
	case PhaseOutput:
		return "Output"
	case PhasePersist:
		return "Persist"
	case PhaseCleanup:
		return "Cleanup"
	default:
		return "Unknown"
	}
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
