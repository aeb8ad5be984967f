package handler

import (
	"github.com/eggchase/server/internal/net"
	"github.com/eggchase/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleInitConnection binds the client to the lowest free player slot and
// replies with ISSUE_IDENTIFIER carrying its client id. With every slot
// taken the client still joins as a spectator and receives snapshots.
// A repeated INIT_CONNECTION only repeats the identifier.
func HandleInitConnection(sess *net.Session, _ *packet.Reader, deps *Deps) error {
	if !sess.Joined {
		slot, ok := deps.World.BindClient(sess.ID)
		if !ok {
			slot = -1
			sess.Log().Info("arena full, joining as spectator")
		}
		sess.Slot = slot
		sess.Joined = true
		sess.Log().Info("client joined", zap.Int("slot", slot), zap.String("ip", sess.IP))
	}
	sess.Send(packet.IssueIdentifierRecord(sess.ID))
	return nil
}

// HandleActionEvent is the client heartbeat. InputSystem already stamped
// the session's last-activity tick before dispatch.
func HandleActionEvent(sess *net.Session, _ *packet.Reader, _ *Deps) error {
	sess.Log().Debug("heartbeat", zap.Uint64("tick", sess.LastActive))
	return nil
}

// HandleDisconnect frees the slot of a reaped session.
func HandleDisconnect(sess *net.Session, deps *Deps) {
	if sess.Joined && sess.Slot >= 0 {
		deps.World.UnbindClient(sess.ID)
	}
}
