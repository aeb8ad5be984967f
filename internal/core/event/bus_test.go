package event

import "testing"

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []PlayerKilled
	Subscribe(b, func(ev PlayerKilled) { got = append(got, ev) })

	Emit(b, PlayerKilled{Victim: 1, Killer: 2})
	Emit(b, PlayerKilled{Victim: 3, Killer: 2})
	if n := b.DispatchAll(); n != 0 || len(got) != 0 {
		t.Fatalf("dispatched %d before swap", n)
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 2 {
		t.Fatalf("dispatched %d, want 2", n)
	}
	if got[0].Victim != 1 || got[1].Victim != 3 {
		t.Errorf("order = %+v", got)
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 0 {
		t.Errorf("events replayed: %d", n)
	}
}

func TestBusTypeOrderIsFirstSeen(t *testing.T) {
	b := NewBus()
	var seq []string
	Subscribe(b, func(EggTransferred) { seq = append(seq, "egg") })
	Subscribe(b, func(PlayerKilled) { seq = append(seq, "kill") })

	Emit(b, PlayerKilled{})
	Emit(b, EggTransferred{})
	b.SwapBuffers()
	b.DispatchAll()

	if len(seq) != 2 || seq[0] != "egg" || seq[1] != "kill" {
		t.Errorf("seq = %v, want [egg kill]", seq)
	}
}
