package system

import (
	"time"

	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/interact"
)

// ResolveSystem commits every handler's pending pairs, in registration
// order. Phase 4 (Resolve).
type ResolveSystem struct {
	handlers []interact.Handler
}

func NewResolveSystem(handlers ...interact.Handler) *ResolveSystem {
	return &ResolveSystem{handlers: handlers}
}

func (s *ResolveSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *ResolveSystem) Update(_ time.Duration) {
	for _, h := range s.handlers {
		h.Update()
	}
}
