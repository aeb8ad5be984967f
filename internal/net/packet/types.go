package packet

import (
	"errors"
	"fmt"
)

// UpdateType is the u32 tag opening every record on the wire.
type UpdateType uint32

const (
	InitConnection UpdateType = iota
	IssueIdentifier
	ActionEvent
	ClientToServer
	ServerToClient
	Bullets
)

// Fixed replication sizes. Changing either changes the wire format.
const (
	MaxPlayers = 4
	MaxTrails  = 16
)

// HeaderSize is the byte length of the update_type tag.
const HeaderSize = 4

const trailSize = 3*4 + 3*4 + 4

// payloadSizes is the static type → payload length table. Records carry no
// length prefix; the tag alone decides how many bytes follow.
var payloadSizes = [...]int{
	InitConnection:  0,
	IssueIdentifier: 4,
	ActionEvent:     0,
	ClientToServer:  4 + 4 + 4,
	ServerToClient:  MaxPlayers*(3*4+4+4+4+4+4) + 4 + 3*4 + 4,
	Bullets:         4 + MaxTrails*trailSize,
}

var ErrUnknownUpdateType = errors.New("unknown update type")

// PayloadSize returns the fixed payload length for t.
func PayloadSize(t UpdateType) (int, bool) {
	if int(t) >= len(payloadSizes) {
		return 0, false
	}
	return payloadSizes[t], true
}

// RecordSize returns header plus payload length for t.
func RecordSize(t UpdateType) (int, bool) {
	n, ok := PayloadSize(t)
	return HeaderSize + n, ok
}

func (t UpdateType) String() string {
	switch t {
	case InitConnection:
		return "INIT_CONNECTION"
	case IssueIdentifier:
		return "ISSUE_IDENTIFIER"
	case ActionEvent:
		return "ACTION_EVENT"
	case ClientToServer:
		return "CLIENT_TO_SERVER"
	case ServerToClient:
		return "SERVER_TO_CLIENT"
	case Bullets:
		return "BULLETS"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}
