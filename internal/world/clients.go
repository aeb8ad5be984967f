package world

import (
	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/net/packet"
	"go.uber.org/zap"
)

// BindClient gives clientID control of the lowest free player slot. A
// client already bound keeps its slot. ok is false when every slot is
// taken.
func (w *World) BindClient(clientID int32) (slot int, ok bool) {
	if s := w.SlotOf(clientID); s >= 0 {
		return s, true
	}
	for s, c := range w.clients {
		if c != freeSlot {
			continue
		}
		id := w.players[s]
		if _, err := w.stores.Client.Add(id, component.ClientRef{ClientID: clientID}); err != nil {
			w.log.Error("bind client", zap.Int32("client", clientID), zap.Error(err))
			return -1, false
		}
		w.clients[s] = clientID
		w.log.Info("client bound", zap.Int32("client", clientID), zap.Int("slot", s))
		return s, true
	}
	return -1, false
}

// UnbindClient frees the client's slot. The player stays in the world and
// idles with an empty movement request.
func (w *World) UnbindClient(clientID int32) {
	s := w.SlotOf(clientID)
	if s < 0 {
		return
	}
	id := w.players[s]
	w.stores.Client.Discard(id)
	if req, ok := w.stores.Request.Get(id); ok {
		req.Flags = 0
	}
	w.clients[s] = freeSlot
	w.log.Info("client unbound", zap.Int32("client", clientID), zap.Int("slot", s))
}

// SlotOf returns the slot bound to clientID, or -1.
func (w *World) SlotOf(clientID int32) int {
	for s, c := range w.clients {
		if c == clientID {
			return s
		}
	}
	return -1
}

// ApplyInput stores the client's latest input on its player. It reports
// false when the client controls no slot.
func (w *World) ApplyInput(clientID int32, in packet.ClientInput) bool {
	s := w.SlotOf(clientID)
	if s < 0 {
		return false
	}
	req, ok := w.stores.Request.Get(w.players[s])
	if !ok {
		return false
	}
	*req = component.MovementRequest{Flags: in.Flags, Yaw: in.Yaw, Pitch: in.Pitch}
	return true
}
