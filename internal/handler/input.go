package handler

import (
	"github.com/eggchase/server/internal/net"
	"github.com/eggchase/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleClientInput stores the latest movement flags and aim for the
// client's player. Input before INIT_CONNECTION, or from a spectator, is
// dropped.
func HandleClientInput(sess *net.Session, r *packet.Reader, deps *Deps) error {
	in := packet.ReadClientInput(r)
	if !sess.Joined || sess.Slot < 0 {
		return nil
	}
	if !deps.World.ApplyInput(sess.ID, in) {
		sess.Log().Debug("input for unbound client dropped", zap.Uint32("flags", in.Flags))
	}
	return nil
}
