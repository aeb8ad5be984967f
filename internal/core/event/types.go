package event

import "github.com/eggchase/server/internal/core/ecs"

// PlayerKilled is emitted when a projectile drops a player to zero health.
type PlayerKilled struct {
	Victim ecs.EntityID
	Killer ecs.EntityID
}

// EggTransferred is emitted whenever the egg changes holder.
type EggTransferred struct {
	Egg  ecs.EntityID
	From ecs.EntityID // zero when the egg was on the ground
	To   ecs.EntityID
}

// EggDropped is emitted when a holder is knocked out.
type EggDropped struct {
	Egg    ecs.EntityID
	Holder ecs.EntityID
}
