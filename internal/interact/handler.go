package interact

import "github.com/eggchase/server/internal/core/ecs"

// Handler resolves one kind of pairwise interaction. Detection calls
// InsertPair while scanning; nothing is mutated until Update, which
// resolves every pending pair once and clears the list.
type Handler interface {
	Name() string
	Register(id ecs.EntityID) error
	Deregister(id ecs.EntityID) bool
	Members() *ecs.EntitySet
	InsertPair(a, b ecs.EntityID) bool
	Update()
}

// deferred is the bookkeeping shared by every handler.
type deferred struct {
	members *ecs.EntitySet
	pending *PairList
}

func (d *deferred) Name() string                    { return d.members.Name() }
func (d *deferred) Register(id ecs.EntityID) error  { return d.members.Register(id) }
func (d *deferred) Deregister(id ecs.EntityID) bool { return d.members.Deregister(id) }
func (d *deferred) Members() *ecs.EntitySet         { return d.members }

// InsertPair ignores pairs involving entities outside the handler's set.
func (d *deferred) InsertPair(a, b ecs.EntityID) bool {
	if !d.members.Contains(a) || !d.members.Contains(b) {
		return false
	}
	return d.pending.Insert(a, b)
}

// Pending returns the pairs waiting for Update.
func (d *deferred) Pending() []Pair { return d.pending.Pairs() }
