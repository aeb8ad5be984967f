package net

import "sort"

// SessionTable holds all live sessions. Accessed only from the game loop
// goroutine, so no mutex is needed.
type SessionTable struct {
	sessions map[int32]*Session
	ids      []int32 // ascending
}

func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[int32]*Session)}
}

func (t *SessionTable) Add(s *Session) {
	if _, ok := t.sessions[s.ID]; ok {
		return
	}
	t.sessions[s.ID] = s
	i := sort.Search(len(t.ids), func(i int) bool { return t.ids[i] >= s.ID })
	t.ids = append(t.ids, 0)
	copy(t.ids[i+1:], t.ids[i:])
	t.ids[i] = s.ID
}

func (t *SessionTable) Remove(id int32) {
	if _, ok := t.sessions[id]; !ok {
		return
	}
	delete(t.sessions, id)
	i := sort.Search(len(t.ids), func(i int) bool { return t.ids[i] >= id })
	t.ids = append(t.ids[:i], t.ids[i+1:]...)
}

func (t *SessionTable) Get(id int32) *Session { return t.sessions[id] }

func (t *SessionTable) Len() int { return len(t.sessions) }

// ForEach visits sessions in ascending id order. fn may close sessions but
// must not add or remove them.
func (t *SessionTable) ForEach(fn func(*Session)) {
	for _, id := range t.ids {
		fn(t.sessions[id])
	}
}

// Accept drains every pending session from src without blocking.
func (t *SessionTable) Accept(src <-chan *Session) []*Session {
	var added []*Session
	for {
		select {
		case s := <-src:
			t.Add(s)
			added = append(added, s)
		default:
			return added
		}
	}
}

// Reap removes and returns every closed session.
func (t *SessionTable) Reap() []*Session {
	var dead []*Session
	for _, id := range t.ids {
		if s := t.sessions[id]; s.IsClosed() {
			dead = append(dead, s)
		}
	}
	for _, s := range dead {
		t.Remove(s.ID)
	}
	return dead
}

// Broadcast buffers data on every live session.
func (t *SessionTable) Broadcast(data []byte) {
	t.ForEach(func(s *Session) {
		if !s.IsClosed() {
			s.Send(data)
		}
	})
}

// FlushAll hands buffered output of every session to its writer.
func (t *SessionTable) FlushAll() {
	t.ForEach(func(s *Session) { s.FlushOutput() })
}
