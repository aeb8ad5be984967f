package net

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// SessionOptions sizes per-session buffers.
type SessionOptions struct {
	InQueueSize  int
	OutQueueSize int
	ReadSize     int // bytes per read call
	MaxBuffered  int // reassembly buffer cap
}

// Server accepts connections and creates Sessions. New sessions are handed
// to the game loop over a channel that the tick drains without blocking.
type Server struct {
	listener Listener
	nextID   atomic.Int32
	newConns chan *Session
	opts     SessionOptions
	log      *zap.Logger
	closeCh  chan struct{}
}

func NewServer(ln Listener, opts SessionOptions, log *zap.Logger) *Server {
	s := &Server{
		listener: ln,
		newConns: make(chan *Session, 64),
		opts:     opts,
		log:      log,
		closeCh:  make(chan struct{}),
	}
	s.nextID.Store(-1)
	return s
}

// AcceptLoop runs in its own goroutine. Client ids are issued sequentially
// from 0 and never reused within a process.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("accept failed", zap.Error(err))
			continue
		}

		id := s.nextID.Add(1)
		sess := NewSession(conn, id, s.opts, s.log)
		sess.Start()

		s.log.Info("client connected", zap.Int32("client", id), zap.String("ip", sess.IP))

		select {
		case s.newConns <- sess:
		default:
			s.log.Warn("accept queue full, dropping connection", zap.Int32("client", id))
			sess.Close()
		}
	}
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// Shutdown stops accepting new connections.
func (s *Server) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}
