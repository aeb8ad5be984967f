package handler

import (
	"bytes"
	gonet "net"
	"testing"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/data"
	"github.com/eggchase/server/internal/net"
	"github.com/eggchase/server/internal/net/packet"
	"github.com/eggchase/server/internal/rules"
	"github.com/eggchase/server/internal/world"
	"go.uber.org/zap"
)

type harness struct {
	deps *Deps
	reg  *packet.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	w, err := world.New(rules.Default(), data.DefaultSpawnTable(packet.MaxPlayers), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{deps: &Deps{World: w, Log: zap.NewNop()}, reg: packet.NewRegistry(zap.NewNop())}
	RegisterAll(h.reg, h.deps)
	return h
}

func (h *harness) session(t *testing.T, id int32) *net.Session {
	t.Helper()
	server, client := gonet.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	return net.NewSession(server, id, net.SessionOptions{InQueueSize: 4, OutQueueSize: 16}, zap.NewNop())
}

// send runs raw bytes through a decoder and the registry, the way
// InputSystem does.
func (h *harness) send(t *testing.T, sess *net.Session, raw []byte) {
	t.Helper()
	dec := packet.NewDecoder(0)
	if err := dec.Feed(raw); err != nil {
		t.Fatal(err)
	}
	for {
		rec, ok, err := dec.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			return
		}
		if err := h.reg.Dispatch(sess, rec); err != nil {
			t.Fatal(err)
		}
	}
}

func initRecord() []byte { return packet.NewWriterWithType(packet.InitConnection).Bytes() }

func TestInitConnectionIssuesIdentifier(t *testing.T) {
	h := newHarness(t)
	sess := h.session(t, 9)

	h.send(t, sess, initRecord())
	sess.FlushOutput()

	if !sess.Joined || sess.Slot != 0 {
		t.Fatalf("joined=%v slot=%d", sess.Joined, sess.Slot)
	}
	got := <-sess.OutQueue
	if !bytes.Equal(got, packet.IssueIdentifierRecord(9)) {
		t.Fatalf("reply = %x", got)
	}
	if snap := h.deps.World.Snapshot(); snap.ClientIDs[0] != 9 {
		t.Fatalf("slot 0 client = %d", snap.ClientIDs[0])
	}

	h.send(t, sess, initRecord())
	if sess.Slot != 0 || h.deps.World.SlotOf(9) != 0 {
		t.Fatal("repeated init moved the client")
	}
}

func TestFullArenaJoinsAsSpectator(t *testing.T) {
	h := newHarness(t)
	for i := int32(0); i < packet.MaxPlayers; i++ {
		h.send(t, h.session(t, i), initRecord())
	}
	extra := h.session(t, packet.MaxPlayers)
	h.send(t, extra, initRecord())
	if !extra.Joined || extra.Slot != -1 {
		t.Fatalf("spectator joined=%v slot=%d", extra.Joined, extra.Slot)
	}

	in := packet.ClientInput{Flags: component.MoveForward}
	h.send(t, extra, in.Record())
	for s := 0; s < packet.MaxPlayers; s++ {
		req, _ := h.deps.World.Stores().Request.Get(h.deps.World.Player(s))
		if req.Flags != 0 {
			t.Fatalf("spectator input reached slot %d", s)
		}
	}
}

func TestClientInputReachesPlayer(t *testing.T) {
	h := newHarness(t)
	sess := h.session(t, 3)

	in := packet.ClientInput{Flags: component.MoveLeft | component.ActionShoot, Yaw: 0.75, Pitch: -0.25}
	h.send(t, sess, in.Record())
	req, _ := h.deps.World.Stores().Request.Get(h.deps.World.Player(0))
	if req.Flags != 0 {
		t.Fatal("input accepted before INIT_CONNECTION")
	}

	h.send(t, sess, append(initRecord(), in.Record()...))
	if *req != (component.MovementRequest{Flags: in.Flags, Yaw: in.Yaw, Pitch: in.Pitch}) {
		t.Fatalf("request = %+v", *req)
	}

	h.send(t, sess, packet.NewWriterWithType(packet.ActionEvent).Bytes())

	HandleDisconnect(sess, h.deps)
	if h.deps.World.SlotOf(3) != -1 {
		t.Fatal("slot still bound after disconnect")
	}
	if req.Flags != 0 {
		t.Fatal("disconnected player kept its input")
	}
}
