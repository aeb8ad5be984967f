package component

import "github.com/eggchase/server/internal/core/ecs"

// Component type ids. The registry removes components in this order when
// an entity is destroyed.
const (
	TypePosition ecs.ComponentType = iota + 1
	TypeVelocity
	TypeOrientation
	TypeHealth
	TypeJumpInfo
	TypeMovementRequest
	TypeStatusEffects
	TypeEggInfo
	TypeProjectile
	TypeScore
	TypePlayerSlot
	TypeClientRef
)
