package component

import (
	"time"

	"github.com/eggchase/server/internal/core/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement request flag bits, as sent by the client.
const (
	MoveForward uint32 = 1 << iota
	MoveBack
	MoveLeft
	MoveRight
	MoveJump
	ActionShoot
	ActionAbility
)

// MovementRequest is the latest input received from the controlling client.
type MovementRequest struct {
	Flags uint32
	Yaw   float32
	Pitch float32
}

// StatusEffects holds per-player cooldowns.
type StatusEffects struct {
	ShootCooldown time.Duration
	DashCooldown  time.Duration
	AbilityHeld   bool
}

type Score struct {
	Points int32
	Carry  time.Duration // egg carry time not yet converted to points
}

// PlayerSlot is the fixed index a player occupies in snapshot arrays.
type PlayerSlot struct {
	Index    int
	Spawn    mgl32.Vec3
	SpawnYaw float32
}

// EggInfo is attached to the single egg entity.
type EggInfo struct {
	Holder       ecs.EntityID
	Held         bool
	LastTransfer time.Duration // simulated time of the last pickup or steal
}

// Projectile is a live bullet. Origin is kept for the trail sent to clients.
type Projectile struct {
	Owner     ecs.EntityID
	Origin    mgl32.Vec3
	Remaining time.Duration
}
