package net

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
)

var testOpts = SessionOptions{InQueueSize: 8, OutQueueSize: 8, ReadSize: 64, MaxBuffered: 1024}

func pipeSession(t *testing.T, id int32) (*Session, net.Conn) {
	t.Helper()
	srv, cli := net.Pipe()
	s := NewSession(srv, id, testOpts, zap.NewNop())
	s.Start()
	t.Cleanup(func() {
		s.Close()
		cli.Close()
	})
	return s, cli
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionTeardownRemovesOnlyClosedSession(t *testing.T) {
	table := NewSessionTable()
	var clients []net.Conn
	var sessions []*Session
	for id := int32(0); id < 3; id++ {
		s, c := pipeSession(t, id)
		table.Add(s)
		sessions = append(sessions, s)
		clients = append(clients, c)
	}

	// Peer close: the server side sees a zero-length read (EOF).
	clients[1].Close()
	waitFor(t, "session 1 to close", sessions[1].IsClosed)

	dead := table.Reap()
	if len(dead) != 1 || dead[0].ID != 1 {
		t.Fatalf("reaped %v, want only session 1", dead)
	}
	if table.Len() != 2 || table.Get(1) != nil || table.Get(0) == nil || table.Get(2) == nil {
		t.Fatalf("table after reap: len=%d", table.Len())
	}

	msg := []byte{4, 0, 0, 0, 9, 9}
	table.Broadcast(msg)
	table.FlushAll()

	for _, i := range []int{0, 2} {
		clients[i].SetReadDeadline(time.Now().Add(2 * time.Second))
		got := make([]byte, len(msg))
		if _, err := io.ReadFull(clients[i], got); err != nil {
			t.Fatalf("client %d read: %v", i, err)
		}
		if !bytes.Equal(got, msg) {
			t.Errorf("client %d got %v", i, got)
		}
	}
	if len(sessions[1].OutQueue) != 0 || len(sessions[1].outBuf) != 0 {
		t.Error("broadcast reached the removed session")
	}
}

func TestSessionReadLoopForwardsChunks(t *testing.T) {
	s, c := pipeSession(t, 5)
	go c.Write([]byte{1, 2, 3})

	select {
	case chunk := <-s.InQueue:
		if !bytes.Equal(chunk, []byte{1, 2, 3}) {
			t.Errorf("chunk = %v", chunk)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no chunk received")
	}
}

func TestSessionTableAcceptAndOrder(t *testing.T) {
	table := NewSessionTable()
	src := make(chan *Session, 4)
	for _, id := range []int32{3, 1, 2} {
		s, _ := pipeSession(t, id)
		src <- s
	}

	added := table.Accept(src)
	if len(added) != 3 {
		t.Fatalf("accepted %d", len(added))
	}
	if more := table.Accept(src); len(more) != 0 {
		t.Errorf("second accept returned %d", len(more))
	}

	var order []int32
	table.ForEach(func(s *Session) { order = append(order, s.ID) })
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
}

func TestServerIssuesSequentialIDs(t *testing.T) {
	ln, err := ListenTCP("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(ln, testOpts, zap.NewNop())
	go srv.AcceptLoop()
	defer srv.Shutdown()

	for want := int32(0); want < 2; want++ {
		c, err := net.Dial("tcp", srv.Addr())
		if err != nil {
			t.Fatal(err)
		}
		defer c.Close()
		select {
		case s := <-srv.NewSessions():
			if s.ID != want {
				t.Errorf("id = %d, want %d", s.ID, want)
			}
			s.Close()
		case <-time.After(2 * time.Second):
			t.Fatal("no session accepted")
		}
	}
}
