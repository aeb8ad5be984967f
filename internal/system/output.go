package system

import (
	"time"

	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/net"
	"github.com/eggchase/server/internal/net/packet"
)

// SnapshotSource builds the per-tick state records.
type SnapshotSource interface {
	Snapshot() packet.Snapshot
	Trails() packet.BulletTrails
}

// OutputSystem broadcasts the world snapshot, plus bullet trails when any
// projectile is live, and flushes every session's buffered output.
// Phase 5 (Output).
type OutputSystem struct {
	source SnapshotSource
	table  *net.SessionTable
}

func NewOutputSystem(source SnapshotSource, table *net.SessionTable) *OutputSystem {
	return &OutputSystem{source: source, table: table}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	if s.table.Len() > 0 {
		snap := s.source.Snapshot()
		s.table.Broadcast(snap.Record())
		if trails := s.source.Trails(); trails.Count > 0 {
			s.table.Broadcast(trails.Record())
		}
	}
	s.table.FlushAll()
}
