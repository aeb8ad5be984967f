package system

import (
	"math"
	"testing"
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/rules"
	"github.com/go-gl/mathgl/mgl32"
)

const dt = 50 * time.Millisecond

type fixture struct {
	stores *component.Stores
	world  *ecs.World
	tuning rules.Tuning
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{stores: component.NewStores(), world: ecs.NewWorld(), tuning: rules.Default()}
	if err := f.stores.RegisterAll(f.world.Registry()); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) player(t *testing.T, slot int, at mgl32.Vec3) ecs.EntityID {
	t.Helper()
	st := f.stores
	id := f.world.CreateEntity()
	for _, err := range []error{
		second(st.Position.Add(id, component.Position{V: at})),
		second(st.Velocity.Add(id, component.Velocity{})),
		second(st.Orientation.Add(id, component.Orientation{})),
		second(st.Jump.Add(id, component.JumpInfo{Grounded: at[1] <= f.tuning.GroundY})),
		second(st.Request.Add(id, component.MovementRequest{})),
		second(st.Status.Add(id, component.StatusEffects{})),
		second(st.Score.Add(id, component.Score{})),
		second(st.Slot.Add(id, component.PlayerSlot{Index: slot, Spawn: at})),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return id
}

func second(_ int, err error) error { return err }

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func TestJumpRisingEdgeAndCap(t *testing.T) {
	f := newFixture(t)
	id := f.player(t, 0, mgl32.Vec3{})
	accel := NewAccelerationSystem(f.stores, &f.tuning, nil)
	if err := accel.Register(id); err != nil {
		t.Fatal(err)
	}
	req, _ := f.stores.Request.Get(id)
	vel, _ := f.stores.Velocity.Get(id)
	jump, _ := f.stores.Jump.Get(id)
	sec := float32(dt.Seconds())

	press := func(on bool) {
		if on {
			req.Flags |= component.MoveJump
		} else {
			req.Flags &^= component.MoveJump
		}
		accel.Update(dt)
	}

	press(true)
	if vel.V[1] != f.tuning.JumpSpeed || jump.DoubleJumpUsed != 1 || !jump.JumpHeld {
		t.Fatalf("first jump: vy=%v used=%d held=%v", vel.V[1], jump.DoubleJumpUsed, jump.JumpHeld)
	}

	press(true)
	if want := f.tuning.JumpSpeed - f.tuning.Gravity*sec; !near(vel.V[1], want) {
		t.Fatalf("held jump re-triggered: vy=%v want %v", vel.V[1], want)
	}

	press(false)
	if jump.JumpHeld {
		t.Fatal("jump still held after release")
	}
	press(true)
	if vel.V[1] != f.tuning.JumpSpeed || jump.DoubleJumpUsed != 2 {
		t.Fatalf("double jump: vy=%v used=%d", vel.V[1], jump.DoubleJumpUsed)
	}

	press(false)
	before := vel.V[1]
	press(true)
	if want := before - f.tuning.Gravity*sec; !near(vel.V[1], want) {
		t.Fatalf("capped jump changed vy: got %v want %v", vel.V[1], want)
	}
	if jump.DoubleJumpUsed != f.tuning.MaxJumps {
		t.Fatalf("used = %d past cap", jump.DoubleJumpUsed)
	}
}

func TestJumpCapOnlyGravityApplies(t *testing.T) {
	f := newFixture(t)
	id := f.player(t, 0, mgl32.Vec3{0, 3, 0})
	accel := NewAccelerationSystem(f.stores, &f.tuning, nil)
	accel.Register(id)

	jump, _ := f.stores.Jump.Get(id)
	jump.DoubleJumpUsed = f.tuning.MaxJumps
	req, _ := f.stores.Request.Get(id)
	req.Flags = component.MoveJump

	accel.Update(dt)
	vel, _ := f.stores.Velocity.Get(id)
	if want := -f.tuning.Gravity * float32(dt.Seconds()); !near(vel.V[1], want) {
		t.Fatalf("vy = %v, want %v", vel.V[1], want)
	}
}

func TestFastFallWithoutJump(t *testing.T) {
	f := newFixture(t)
	id := f.player(t, 0, mgl32.Vec3{0, 3, 0})
	accel := NewAccelerationSystem(f.stores, &f.tuning, nil)
	accel.Register(id)

	accel.Update(dt)
	vel, _ := f.stores.Velocity.Get(id)
	want := -f.tuning.Gravity * f.tuning.FastFall * float32(dt.Seconds())
	if !near(vel.V[1], want) {
		t.Fatalf("vy = %v, want %v", vel.V[1], want)
	}
}

type fixedScale float32

func (s fixedScale) FrictionScale() float32 { return float32(s) }

func TestGroundAccelerationAndFriction(t *testing.T) {
	run := func(scale FrictionScaler) float32 {
		f := newFixture(t)
		id := f.player(t, 0, mgl32.Vec3{})
		accel := NewAccelerationSystem(f.stores, &f.tuning, scale)
		accel.Register(id)
		req, _ := f.stores.Request.Get(id)
		req.Flags = component.MoveForward
		accel.Update(dt)
		vel, _ := f.stores.Velocity.Get(id)
		return vel.V[0]
	}

	tu := rules.Default()
	sec := float32(dt.Seconds())
	want := tu.MoveAccel * sec * (1 - tu.GroundFriction*sec)
	if got := run(nil); !near(got, want) {
		t.Fatalf("vx = %v, want %v", got, want)
	}
	if icy := run(fixedScale(tu.WinterFriction)); icy <= want {
		t.Fatalf("winter vx %v not above normal %v", icy, want)
	}
}

func TestAirControlReducesAcceleration(t *testing.T) {
	f := newFixture(t)
	id := f.player(t, 0, mgl32.Vec3{0, 5, 0})
	accel := NewAccelerationSystem(f.stores, &f.tuning, nil)
	accel.Register(id)
	req, _ := f.stores.Request.Get(id)
	req.Flags = component.MoveForward | component.MoveRight

	accel.Update(dt)
	vel, _ := f.stores.Velocity.Get(id)
	sec := float32(dt.Seconds())
	horiz := mgl32.Vec2{vel.V[0], vel.V[2]}.Len()
	want := f.tuning.MoveAccel * f.tuning.AirControl * sec * (1 - f.tuning.AirFriction*sec)
	if !near(horiz, want) {
		t.Fatalf("horizontal speed %v, want %v", horiz, want)
	}
}

func TestCollisionLandsOnGround(t *testing.T) {
	f := newFixture(t)
	id := f.player(t, 0, mgl32.Vec3{0, 2, 0})
	coll := NewCollisionSystem(f.stores, &f.tuning)
	coll.Register(id)

	coll.Update(dt)
	jump, _ := f.stores.Jump.Get(id)
	if jump.Grounded {
		t.Fatal("grounded while airborne")
	}

	pos, _ := f.stores.Position.Get(id)
	vel, _ := f.stores.Velocity.Get(id)
	pos.V[1], vel.V[1] = -0.3, -5
	jump.DoubleJumpUsed = 2
	coll.Update(dt)
	if pos.V[1] != f.tuning.GroundY || vel.V[1] != 0 {
		t.Fatalf("not clamped: y=%v vy=%v", pos.V[1], vel.V[1])
	}
	if !jump.Grounded || jump.DoubleJumpUsed != 0 {
		t.Fatalf("landing did not refund jumps: %+v", *jump)
	}
}

func TestMovementIntegratesVelocity(t *testing.T) {
	f := newFixture(t)
	id := f.player(t, 0, mgl32.Vec3{1, 1, 1})
	mv := NewMovementSystem(f.stores)
	mv.Register(id)
	vel, _ := f.stores.Velocity.Get(id)
	vel.V = mgl32.Vec3{2, 0, -4}

	mv.Update(500 * time.Millisecond)
	pos, _ := f.stores.Position.Get(id)
	if pos.V != (mgl32.Vec3{2, 1, -1}) {
		t.Fatalf("pos = %v", pos.V)
	}
}

func TestDashOnRisingEdge(t *testing.T) {
	f := newFixture(t)
	id := f.player(t, 0, mgl32.Vec3{})
	ab := NewAbilitySystem(f.stores, &f.tuning)
	ab.Register(id)
	req, _ := f.stores.Request.Get(id)
	vel, _ := f.stores.Velocity.Get(id)

	req.Flags = component.ActionAbility
	ab.Update(dt)
	if vel.V[0] != f.tuning.DashSpeed {
		t.Fatalf("dash vx = %v, want %v", vel.V[0], f.tuning.DashSpeed)
	}
	ab.Update(dt)
	if vel.V[0] != f.tuning.DashSpeed {
		t.Fatal("holding the button dashed again")
	}
	req.Flags = 0
	ab.Update(dt)
	req.Flags = component.ActionAbility
	ab.Update(dt)
	if vel.V[0] != f.tuning.DashSpeed {
		t.Fatal("dashed during cooldown")
	}
}

func TestScoringCountsWholeSeconds(t *testing.T) {
	f := newFixture(t)
	holder := f.player(t, 0, mgl32.Vec3{})
	egg := f.world.CreateEntity()
	f.stores.Egg.Add(egg, component.EggInfo{Holder: holder, Held: true})
	sc := NewScoringSystem(f.stores)
	if err := sc.Register(egg); err != nil {
		t.Fatal(err)
	}

	sc.Update(600 * time.Millisecond)
	score, _ := f.stores.Score.Get(holder)
	if score.Points != 0 {
		t.Fatalf("points = %d after 0.6s", score.Points)
	}
	sc.Update(600 * time.Millisecond)
	if score.Points != 1 || score.Carry != 200*time.Millisecond {
		t.Fatalf("score = %+v after 1.2s", *score)
	}
}

func TestProjectileLifetime(t *testing.T) {
	f := newFixture(t)
	owner := f.player(t, 0, mgl32.Vec3{})
	ps := NewProjectileSystem(f.stores, &f.tuning, f.world)

	alive := f.world.CreateEntity()
	f.stores.Position.Add(alive, component.Position{V: mgl32.Vec3{0, 1, 0}})
	f.stores.Projectile.Add(alive, component.Projectile{Owner: owner, Remaining: time.Second})
	sunk := f.world.CreateEntity()
	f.stores.Position.Add(sunk, component.Position{V: mgl32.Vec3{0, -1, 0}})
	f.stores.Projectile.Add(sunk, component.Projectile{Owner: owner, Remaining: time.Second})
	f.world.Registry().RegisterMembers(ps.Members())
	ps.Register(alive)
	ps.Register(sunk)

	ps.Update(dt)
	if f.world.Pending(alive) || !f.world.Pending(sunk) {
		t.Fatal("only the projectile below ground should expire")
	}
	f.world.FlushDestroyQueue()
	if ps.Members().Len() != 1 {
		t.Fatalf("members = %d after flush", ps.Members().Len())
	}

	ps.Update(time.Second)
	if !f.world.Pending(alive) {
		t.Fatal("projectile outlived its ttl")
	}
}
