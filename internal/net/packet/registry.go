package packet

import (
	"fmt"

	"go.uber.org/zap"
)

// HandlerFunc is the callback signature for record handlers.
// The session pointer is passed as an opaque interface to avoid import cycles.
type HandlerFunc func(sess any, r *Reader) error

// Registry maps update types to handlers.
type Registry struct {
	handlers map[UpdateType]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[UpdateType]HandlerFunc),
		log:      log,
	}
}

// Register maps an update type to a handler.
func (reg *Registry) Register(t UpdateType, fn HandlerFunc) {
	reg.handlers[t] = fn
}

// Dispatch hands rec to its handler. A type with a known size but no
// handler (a server-to-client type sent by a client) is a protocol
// violation, same as an unknown tag.
func (reg *Registry) Dispatch(sess any, rec Record) error {
	fn, ok := reg.handlers[rec.Type]
	if !ok {
		return fmt.Errorf("%w: %s not accepted from clients", ErrUnknownUpdateType, rec.Type)
	}
	reg.log.Debug("record",
		zap.Stringer("type", rec.Type),
		zap.Int("size", len(rec.Payload)),
	)
	r := NewReader(rec.Payload)
	if err := fn(sess, r); err != nil {
		return fmt.Errorf("handle %s: %w", rec.Type, err)
	}
	if r.Short() {
		return fmt.Errorf("handle %s: payload shorter than fields read", rec.Type)
	}
	return nil
}
