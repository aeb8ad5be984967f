package packet

import "github.com/go-gl/mathgl/mgl32"

// ClientInput is the CLIENT_TO_SERVER payload.
type ClientInput struct {
	Flags uint32
	Yaw   float32
	Pitch float32
}

func (m ClientInput) Record() []byte {
	w := NewWriterWithType(ClientToServer)
	w.WriteU32(m.Flags)
	w.WriteF32(m.Yaw)
	w.WriteF32(m.Pitch)
	return w.Bytes()
}

func ReadClientInput(r *Reader) ClientInput {
	return ClientInput{
		Flags: r.ReadU32(),
		Yaw:   r.ReadF32(),
		Pitch: r.ReadF32(),
	}
}

// IssueIdentifierRecord tells a client the id the server assigned it.
func IssueIdentifierRecord(clientID int32) []byte {
	w := NewWriterWithType(IssueIdentifier)
	w.WriteI32(clientID)
	return w.Bytes()
}

// Snapshot is the SERVER_TO_CLIENT payload. Arrays are indexed by player
// slot; ClientIDs holds -1 for unbound slots and EggHolder -1 when the egg
// is on the ground.
type Snapshot struct {
	Positions [MaxPlayers]mgl32.Vec3
	Yaws      [MaxPlayers]float32
	Pitches   [MaxPlayers]float32
	Health    [MaxPlayers]int32
	Scores    [MaxPlayers]int32
	ClientIDs [MaxPlayers]int32
	EggHolder int32
	EggPos    mgl32.Vec3
	Season    uint32
}

func (m *Snapshot) Record() []byte {
	w := NewWriterWithType(ServerToClient)
	for i := range m.Positions {
		w.WriteVec3(m.Positions[i])
	}
	for _, v := range m.Yaws {
		w.WriteF32(v)
	}
	for _, v := range m.Pitches {
		w.WriteF32(v)
	}
	for _, v := range m.Health {
		w.WriteI32(v)
	}
	for _, v := range m.Scores {
		w.WriteI32(v)
	}
	for _, v := range m.ClientIDs {
		w.WriteI32(v)
	}
	w.WriteI32(m.EggHolder)
	w.WriteVec3(m.EggPos)
	w.WriteU32(m.Season)
	return w.Bytes()
}

func ReadSnapshot(r *Reader) Snapshot {
	var m Snapshot
	for i := range m.Positions {
		m.Positions[i] = r.ReadVec3()
	}
	for i := range m.Yaws {
		m.Yaws[i] = r.ReadF32()
	}
	for i := range m.Pitches {
		m.Pitches[i] = r.ReadF32()
	}
	for i := range m.Health {
		m.Health[i] = r.ReadI32()
	}
	for i := range m.Scores {
		m.Scores[i] = r.ReadI32()
	}
	for i := range m.ClientIDs {
		m.ClientIDs[i] = r.ReadI32()
	}
	m.EggHolder = r.ReadI32()
	m.EggPos = r.ReadVec3()
	m.Season = r.ReadU32()
	return m
}

// Trail is one bullet segment from its origin to its current position.
type Trail struct {
	Start   mgl32.Vec3
	End     mgl32.Vec3
	Shooter int32 // player slot
}

// BulletTrails is the BULLETS payload. Only the first Count entries are
// meaningful; the rest are zero.
type BulletTrails struct {
	Count  uint32
	Trails [MaxTrails]Trail
}

// Append adds a trail, reporting false once the array is full.
func (m *BulletTrails) Append(t Trail) bool {
	if m.Count >= MaxTrails {
		return false
	}
	m.Trails[m.Count] = t
	m.Count++
	return true
}

func (m *BulletTrails) Record() []byte {
	w := NewWriterWithType(Bullets)
	w.WriteU32(m.Count)
	for i := range m.Trails {
		w.WriteVec3(m.Trails[i].Start)
		w.WriteVec3(m.Trails[i].End)
		w.WriteI32(m.Trails[i].Shooter)
	}
	return w.Bytes()
}

func ReadBulletTrails(r *Reader) BulletTrails {
	var m BulletTrails
	m.Count = r.ReadU32()
	for i := range m.Trails {
		m.Trails[i].Start = r.ReadVec3()
		m.Trails[i].End = r.ReadVec3()
		m.Trails[i].Shooter = r.ReadI32()
	}
	return m
}
