package component

import "github.com/go-gl/mathgl/mgl32"

// Pure data, zero methods — all mutations happen in systems and handlers.

type Position struct {
	V mgl32.Vec3
}

type Velocity struct {
	V mgl32.Vec3
}

// Orientation is the facing replicated to clients, in radians.
type Orientation struct {
	Yaw   float32
	Pitch float32
}

type Health struct {
	Curr int32
	Max  int32
}

// JumpInfo tracks the jump button edge and how many jumps were spent since
// last touching ground.
type JumpInfo struct {
	JumpHeld       bool
	DoubleJumpUsed int
	Grounded       bool
}
