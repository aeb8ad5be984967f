package component

// ClientRef links a player entity to the network client controlling it.
// The session itself lives in net/; ClientID is -1 while the slot is free.
type ClientRef struct {
	ClientID int32
}
