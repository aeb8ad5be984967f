package net

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/eggchase/server/internal/net/packet"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// Session represents a single client connection. Socket I/O runs in
// dedicated goroutines; everything else is touched only by the game loop.
type Session struct {
	ID   int32
	conn Conn

	InQueue  chan []byte // raw chunks, drained by InputSystem
	OutQueue chan []byte // records, drained by writeLoop

	IP string

	// Game loop only.
	Decoder    *packet.Decoder
	Joined     bool   // INIT_CONNECTION received
	Slot       int    // player slot, -1 when spectating or not joined
	LastActive uint64 // tick of the last record received
	Rejected   bool   // closed by the game loop for a protocol error

	outBuf   [][]byte
	readSize int

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

func NewSession(conn Conn, id int32, opts SessionOptions, log *zap.Logger) *Session {
	readSize := opts.ReadSize
	if readSize <= 0 {
		readSize = 4096
	}
	ip := ""
	if addr := conn.RemoteAddr(); addr != nil {
		ip = addr.String()
	}
	return &Session{
		ID:       id,
		conn:     conn,
		InQueue:  make(chan []byte, opts.InQueueSize),
		OutQueue: make(chan []byte, opts.OutQueueSize),
		IP:       ip,
		Decoder:  packet.NewDecoder(opts.MaxBuffered),
		Slot:     -1,
		readSize: readSize,
		closeCh:  make(chan struct{}),
		log:      log.With(zap.Int32("client", id)),
	}
}

// Start launches the reader and writer goroutines.
func (s *Session) Start() {
	go s.readLoop()
	go s.writeLoop()
}

func (s *Session) Log() *zap.Logger { return s.log }

// Send buffers a record. Nothing reaches the socket until FlushOutput.
func (s *Session) Send(data []byte) {
	if s.closed.Load() {
		return
	}
	s.outBuf = append(s.outBuf, data)
}

// FlushOutput moves buffered records to the writer. A full OutQueue means
// the client is not keeping up; the session is closed rather than stalling
// the tick.
func (s *Session) FlushOutput() {
	for _, data := range s.outBuf {
		select {
		case s.OutQueue <- data:
		default:
			s.log.Warn("output queue full, closing slow client")
			s.Close()
			s.outBuf = s.outBuf[:0]
			return
		}
	}
	s.outBuf = s.outBuf[:0]
}

// Close shuts the session down. Safe to call from any goroutine, repeatedly.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// readLoop pushes raw chunks to InQueue. A zero-length read or any error
// means the peer is gone.
func (s *Session) readLoop() {
	defer s.Close()

	buf := make([]byte, s.readSize)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case s.InQueue <- chunk:
			case <-s.closeCh:
				return
			}
		}
		if err != nil {
			if !s.closed.Load() {
				s.log.Debug("read ended", zap.Error(err))
			}
			return
		}
		if n == 0 {
			s.log.Debug("zero-length read")
			return
		}
	}
}

func (s *Session) writeLoop() {
	defer s.Close()

	for {
		select {
		case data := <-s.OutQueue:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if _, err := s.conn.Write(data); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write failed", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
