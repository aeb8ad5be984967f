package system

import (
	"context"
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/core/event"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/persist"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchSaver commits one periodic save.
type BatchSaver interface {
	Save(ctx context.Context, b persist.Batch) error
}

const saveTimeout = 10 * time.Second

// PersistenceSystem snapshots scores and the kill log every interval of
// simulated time and hands the batch to a background writer, so the tick
// never waits on the database. Phase 6 (Persist).
type PersistenceSystem struct {
	stores   *component.Stores
	clock    *coresys.Clock
	saver    BatchSaver
	matchID  uuid.UUID
	interval time.Duration
	elapsed  time.Duration
	kills    []persist.KillEntry
	queue    chan persist.Batch
	done     chan struct{}
	log      *zap.Logger
}

func NewPersistenceSystem(stores *component.Stores, clock *coresys.Clock, bus *event.Bus, saver BatchSaver, matchID uuid.UUID, interval time.Duration, log *zap.Logger) *PersistenceSystem {
	s := &PersistenceSystem{
		stores:   stores,
		clock:    clock,
		saver:    saver,
		matchID:  matchID,
		interval: interval,
		queue:    make(chan persist.Batch, 4),
		done:     make(chan struct{}),
		log:      log.With(zap.Stringer("match", matchID)),
	}
	event.Subscribe(bus, s.onKill)
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(dt time.Duration) {
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0

	b := s.Collect()
	select {
	case s.queue <- b:
		s.kills = s.kills[:0]
	default:
		// Kills stay buffered for the next attempt.
		s.log.Warn("score save dropped, writer busy")
	}
}

func (s *PersistenceSystem) onKill(ev event.PlayerKilled) {
	killer, ok1 := s.stores.Slot.Get(ev.Killer)
	victim, ok2 := s.stores.Slot.Get(ev.Victim)
	if !ok1 || !ok2 {
		return
	}
	s.kills = append(s.kills, persist.KillEntry{
		Tick:       s.clock.Ticks(),
		KillerSlot: int16(killer.Index),
		VictimSlot: int16(victim.Index),
	})
}

// Collect builds a batch from the current scores and pending kills, in
// slot store order.
func (s *PersistenceSystem) Collect() persist.Batch {
	b := persist.Batch{
		MatchID: s.matchID,
		At:      time.Now(),
		Kills:   append([]persist.KillEntry(nil), s.kills...),
	}
	s.stores.Slot.Each(func(id ecs.EntityID, slot *component.PlayerSlot) {
		row := persist.ScoreRow{Slot: int16(slot.Index), ClientID: -1}
		if sc, ok := s.stores.Score.Get(id); ok {
			row.Points = sc.Points
		}
		if c, ok := s.stores.Client.Get(id); ok {
			row.ClientID = c.ClientID
		}
		b.Scores = append(b.Scores, row)
	})
	return b
}

// Run is the background writer. When ctx is cancelled it writes whatever
// is still queued, then returns and closes Done. Writes are bounded by
// saveTimeout rather than ctx, so a batch picked up during shutdown still
// lands.
func (s *PersistenceSystem) Run(ctx context.Context) {
	defer close(s.done)
	writeCtx := context.WithoutCancel(ctx)
	for {
		select {
		case b := <-s.queue:
			s.write(writeCtx, b)
		case <-ctx.Done():
			s.drain(writeCtx)
			return
		}
	}
}

// Done is closed once Run has returned.
func (s *PersistenceSystem) Done() <-chan struct{} { return s.done }

// SaveNow writes the current state synchronously. Used on shutdown after
// the tick loop and Run have stopped.
func (s *PersistenceSystem) SaveNow(ctx context.Context) error {
	s.drain(ctx)
	b := s.Collect()
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := s.saver.Save(ctx, b); err != nil {
		return err
	}
	s.kills = s.kills[:0]
	return nil
}

func (s *PersistenceSystem) drain(ctx context.Context) {
	for {
		select {
		case b := <-s.queue:
			s.write(ctx, b)
		default:
			return
		}
	}
}

func (s *PersistenceSystem) write(ctx context.Context, b persist.Batch) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	start := time.Now()
	if err := s.saver.Save(ctx, b); err != nil {
		s.log.Error("score save failed", zap.Error(err))
		return
	}
	s.log.Debug("scores saved",
		zap.Int("rows", len(b.Scores)),
		zap.Int("kills", len(b.Kills)),
		zap.Duration("took", time.Since(start)),
	)
}
