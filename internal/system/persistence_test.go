package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/event"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/persist"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type recordingSaver struct {
	batches []persist.Batch
	err     error
}

func (s *recordingSaver) Save(ctx context.Context, b persist.Batch) error {
	if s.err != nil {
		return s.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.batches = append(s.batches, b)
	return nil
}

func TestPersistenceBatchesScoresAndKills(t *testing.T) {
	f := newFixture(t)
	p0 := f.player(t, 0, mgl32.Vec3{})
	p1 := f.player(t, 1, mgl32.Vec3{5, 0, 5})
	f.stores.Client.Add(p1, component.ClientRef{ClientID: 42})
	score, _ := f.stores.Score.Get(p0)
	score.Points = 7

	bus := event.NewBus()
	clock := &coresys.Clock{}
	saver := &recordingSaver{}
	match := uuid.New()
	ps := NewPersistenceSystem(f.stores, clock, bus, saver, match, time.Second, zap.NewNop())

	event.Emit(bus, event.PlayerKilled{Victim: p1, Killer: p0})
	bus.SwapBuffers()
	bus.DispatchAll()

	ps.Update(500 * time.Millisecond)
	ps.Update(500 * time.Millisecond)

	if err := ps.SaveNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(saver.batches) != 2 {
		t.Fatalf("saved %d batches, want 2", len(saver.batches))
	}
	first := saver.batches[0]
	if first.MatchID != match {
		t.Fatalf("match id = %v", first.MatchID)
	}
	if len(first.Kills) != 1 || first.Kills[0].KillerSlot != 0 || first.Kills[0].VictimSlot != 1 {
		t.Fatalf("kills = %+v", first.Kills)
	}
	want := []persist.ScoreRow{{Slot: 0, ClientID: -1, Points: 7}, {Slot: 1, ClientID: 42}}
	if len(first.Scores) != len(want) {
		t.Fatalf("scores = %+v", first.Scores)
	}
	for i := range want {
		if first.Scores[i] != want[i] {
			t.Fatalf("score row %d = %+v, want %+v", i, first.Scores[i], want[i])
		}
	}
	if len(saver.batches[1].Kills) != 0 {
		t.Fatal("kills saved twice")
	}
}

func TestPersistenceSaveNowReportsError(t *testing.T) {
	f := newFixture(t)
	f.player(t, 0, mgl32.Vec3{})
	saver := &recordingSaver{err: errors.New("db down")}
	ps := NewPersistenceSystem(f.stores, &coresys.Clock{}, event.NewBus(), saver, uuid.New(), time.Minute, zap.NewNop())
	if err := ps.SaveNow(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
}

func TestPersistenceRunFlushesQueueOnCancel(t *testing.T) {
	f := newFixture(t)
	p0 := f.player(t, 0, mgl32.Vec3{})
	p1 := f.player(t, 1, mgl32.Vec3{5, 0, 5})

	bus := event.NewBus()
	saver := &recordingSaver{}
	ps := NewPersistenceSystem(f.stores, &coresys.Clock{}, bus, saver, uuid.New(), time.Second, zap.NewNop())

	event.Emit(bus, event.PlayerKilled{Victim: p1, Killer: p0})
	bus.SwapBuffers()
	bus.DispatchAll()
	ps.Update(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ps.Run(ctx)

	select {
	case <-ps.Done():
	default:
		t.Fatal("Done not closed after Run returned")
	}
	if len(saver.batches) != 1 || len(saver.batches[0].Kills) != 1 {
		t.Fatalf("queued batch lost on shutdown: %+v", saver.batches)
	}
}
