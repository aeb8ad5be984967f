package system

import (
	"time"

	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/net"
	"github.com/eggchase/server/internal/net/packet"
	"go.uber.org/zap"
)

// SessionSource hands newly accepted sessions to the game loop.
type SessionSource interface {
	NewSessions() <-chan *net.Session
}

// InputSystem accepts new sessions, reassembles each session's byte stream
// into records and dispatches them through the packet registry, then reaps
// closed sessions. Records a peer sent before hanging up are still
// dispatched; a session rejected for a protocol error is not read again.
// Phase 0 (Input).
type InputSystem struct {
	source       SessionSource
	table        *net.SessionTable
	registry     *packet.Registry
	clock        *coresys.Clock
	maxPerTick   int
	onDisconnect func(*net.Session)
	log          *zap.Logger
}

func NewInputSystem(
	source SessionSource,
	table *net.SessionTable,
	registry *packet.Registry,
	clock *coresys.Clock,
	maxPerTick int,
	onDisconnect func(*net.Session),
	log *zap.Logger,
) *InputSystem {
	if maxPerTick <= 0 {
		maxPerTick = 32
	}
	return &InputSystem{
		source:       source,
		table:        table,
		registry:     registry,
		clock:        clock,
		maxPerTick:   maxPerTick,
		onDisconnect: onDisconnect,
		log:          log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for _, sess := range s.table.Accept(s.source.NewSessions()) {
		sess.Log().Info("session accepted", zap.String("ip", sess.IP))
	}

	s.table.ForEach(func(sess *net.Session) {
		if sess.Rejected {
			return
		}
		limit := s.maxPerTick
		if sess.IsClosed() {
			// The read loop queues every chunk before it closes, so a peer
			// that hung up has all of its last records waiting here.
			limit = len(sess.InQueue)
		}
		for i := 0; i < limit; i++ {
			select {
			case chunk := <-sess.InQueue:
				if !s.consume(sess, chunk) {
					return
				}
			default:
				return
			}
		}
	})

	for _, sess := range s.table.Reap() {
		if s.onDisconnect != nil {
			s.onDisconnect(sess)
		}
		sess.Log().Info("session closed", zap.Int("slot", sess.Slot))
	}
}

// consume feeds one chunk to the session's decoder and dispatches every
// record it completes. Records borrow the decoder buffer, so they are
// handled before the next chunk is fed. A protocol error closes the
// session and reports false.
func (s *InputSystem) consume(sess *net.Session, chunk []byte) bool {
	if err := sess.Decoder.Feed(chunk); err != nil {
		return s.fail(sess, err)
	}
	for {
		rec, ok, err := sess.Decoder.Next()
		if err != nil {
			return s.fail(sess, err)
		}
		if !ok {
			return true
		}
		sess.LastActive = s.clock.Ticks()
		if err := s.registry.Dispatch(sess, rec); err != nil {
			return s.fail(sess, err)
		}
	}
}

func (s *InputSystem) fail(sess *net.Session, err error) bool {
	sess.Log().Warn("protocol error, closing session", zap.Error(err))
	sess.Rejected = true
	sess.Close()
	return false
}
