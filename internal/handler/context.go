package handler

import (
	"github.com/eggchase/server/internal/net"
	"github.com/eggchase/server/internal/net/packet"
	"github.com/eggchase/server/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	World *world.World
	Log   *zap.Logger
}

// RegisterAll registers every client-to-server record handler. Types left
// unregistered (ISSUE_IDENTIFIER, SERVER_TO_CLIENT, BULLETS) are rejected
// by the registry when a client sends them.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	reg.Register(packet.InitConnection, func(sess any, r *packet.Reader) error {
		return HandleInitConnection(sess.(*net.Session), r, deps)
	})
	reg.Register(packet.ActionEvent, func(sess any, r *packet.Reader) error {
		return HandleActionEvent(sess.(*net.Session), r, deps)
	})
	reg.Register(packet.ClientToServer, func(sess any, r *packet.Reader) error {
		return HandleClientInput(sess.(*net.Session), r, deps)
	})
}
