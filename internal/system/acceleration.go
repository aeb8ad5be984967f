package system

import (
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/rules"
	"github.com/go-gl/mathgl/mgl32"
)

// FrictionScaler scales ground friction, e.g. ice in winter.
type FrictionScaler interface {
	FrictionScale() float32
}

// AccelerationSystem turns movement requests into velocity changes: input
// acceleration, friction, gravity and jumps. Phase 2 (Update).
type AccelerationSystem struct {
	members
	stores  *component.Stores
	tuning  *rules.Tuning
	surface FrictionScaler
}

func NewAccelerationSystem(stores *component.Stores, tuning *rules.Tuning, surface FrictionScaler) *AccelerationSystem {
	return &AccelerationSystem{
		members: members{set: ecs.NewEntitySet("acceleration", stores.Velocity, stores.Jump, stores.Request)},
		stores:  stores,
		tuning:  tuning,
		surface: surface,
	}
}

func (s *AccelerationSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AccelerationSystem) Update(dt time.Duration) {
	sec := float32(dt.Seconds())
	for _, id := range s.set.IDs() {
		vel, _ := s.stores.Velocity.Get(id)
		jump, _ := s.stores.Jump.Get(id)
		req, _ := s.stores.Request.Get(id)
		if o, ok := s.stores.Orientation.Get(id); ok {
			o.Yaw, o.Pitch = req.Yaw, req.Pitch
		}
		s.accelerate(vel, jump, req, sec)
	}
}

func (s *AccelerationSystem) accelerate(vel *component.Velocity, jump *component.JumpInfo, req *component.MovementRequest, sec float32) {
	t := s.tuning
	forward, right := rules.Forward(req.Yaw), rules.Right(req.Yaw)

	var dir mgl32.Vec3
	if req.Flags&component.MoveForward != 0 {
		dir = dir.Add(forward)
	}
	if req.Flags&component.MoveBack != 0 {
		dir = dir.Sub(forward)
	}
	if req.Flags&component.MoveRight != 0 {
		dir = dir.Add(right)
	}
	if req.Flags&component.MoveLeft != 0 {
		dir = dir.Sub(right)
	}
	if dir.Len() > 0 {
		mult := float32(1)
		if !jump.Grounded {
			mult = t.AirControl
		}
		dir = dir.Normalize().Mul(t.MoveAccel * mult * sec)
		vel.V[0] += dir[0]
		vel.V[2] += dir[2]
	}

	friction := t.AirFriction
	if jump.Grounded {
		friction = t.GroundFriction
		if s.surface != nil {
			friction *= s.surface.FrictionScale()
		}
	}
	keep := 1 - friction*sec
	if keep < 0 {
		keep = 0
	}
	vel.V[0] *= keep
	vel.V[2] *= keep

	jumpReq := req.Flags&component.MoveJump != 0
	g := t.Gravity
	if !jumpReq {
		g *= t.FastFall
	}
	vel.V[1] -= g * sec

	switch {
	case jumpReq && !jump.JumpHeld && jump.DoubleJumpUsed < t.MaxJumps:
		vel.V[1] = t.JumpSpeed
		jump.JumpHeld = true
		jump.DoubleJumpUsed++
		jump.Grounded = false
	case !jumpReq:
		jump.JumpHeld = false
	}
}
