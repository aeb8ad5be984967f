package world

import (
	"fmt"
	"time"

	"github.com/eggchase/server/internal/component"
	"github.com/eggchase/server/internal/core/ecs"
	"github.com/eggchase/server/internal/core/event"
	coresys "github.com/eggchase/server/internal/core/system"
	"github.com/eggchase/server/internal/data"
	"github.com/eggchase/server/internal/interact"
	"github.com/eggchase/server/internal/net/packet"
	"github.com/eggchase/server/internal/rules"
	"github.com/eggchase/server/internal/system"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const freeSlot int32 = -1

// World owns every store, system and handler of one match. All methods
// run on the game loop goroutine; no locks needed.
type World struct {
	ecs    *ecs.World
	stores *component.Stores
	tuning *rules.Tuning
	spawns *data.SpawnTable
	clock  *coresys.Clock
	runner *coresys.Runner
	bus    *event.Bus
	log    *zap.Logger

	players [packet.MaxPlayers]ecs.EntityID // by slot
	clients [packet.MaxPlayers]int32        // client id by slot, freeSlot when unbound
	egg     ecs.EntityID

	season      *system.SeasonSystem
	accel       *system.AccelerationSystem
	ability     *system.AbilitySystem
	shoot       *system.ShootSystem
	movement    *system.MovementSystem
	collision   *system.CollisionSystem
	projectiles *system.ProjectileSystem
	eggCarry    *system.EggCarrySystem
	scoring     *system.ScoringSystem

	stacking   *interact.StackingHandler
	eggContact *interact.EggHandler
	hits       *interact.ProjectileHandler
}

// New builds the world: one player entity per slot and the egg, each
// registered with the systems and handlers that simulate it.
func New(tuning rules.Tuning, spawns *data.SpawnTable, log *zap.Logger) (*World, error) {
	if spawns.Count() < packet.MaxPlayers {
		return nil, fmt.Errorf("spawn table has %d slots, need %d", spawns.Count(), packet.MaxPlayers)
	}
	t := tuning
	clock := &coresys.Clock{}
	w := &World{
		ecs:    ecs.NewWorld(),
		stores: component.NewStores(),
		tuning: &t,
		spawns: spawns,
		clock:  clock,
		runner: coresys.NewRunner(clock),
		bus:    event.NewBus(),
		log:    log,
	}
	if err := w.stores.RegisterAll(w.ecs.Registry()); err != nil {
		return nil, fmt.Errorf("register stores: %w", err)
	}
	w.build()

	for slot := 0; slot < packet.MaxPlayers; slot++ {
		id, err := w.spawnPlayer(slot)
		if err != nil {
			return nil, fmt.Errorf("spawn player %d: %w", slot, err)
		}
		w.players[slot] = id
		w.clients[slot] = freeSlot
	}
	egg, err := w.spawnEgg()
	if err != nil {
		return nil, fmt.Errorf("spawn egg: %w", err)
	}
	w.egg = egg

	log.Info("world ready",
		zap.Int("players", packet.MaxPlayers),
		zap.Int("systems", w.runner.Len()),
		zap.Stringer("egg", egg),
	)
	return w, nil
}

// build constructs systems and handlers and fixes their run order. Within
// a phase, systems run in the order registered here.
func (w *World) build() {
	st, t := w.stores, w.tuning

	w.season = system.NewSeasonSystem(w.clock, t, w.log)
	w.accel = system.NewAccelerationSystem(st, t, w.season)
	w.ability = system.NewAbilitySystem(st, t)
	w.shoot = system.NewShootSystem(st, t, w, w.log)
	w.movement = system.NewMovementSystem(st)
	w.collision = system.NewCollisionSystem(st, t)
	w.projectiles = system.NewProjectileSystem(st, t, w.ecs)
	w.eggCarry = system.NewEggCarrySystem(st, t)
	w.scoring = system.NewScoringSystem(st)

	w.stacking = interact.NewStackingHandler(st, t)
	w.eggContact = interact.NewEggHandler(st, t, w.clock, w.bus)
	w.hits = interact.NewProjectileHandler(st, t, w.ecs, interact.NewRespawner(st, t, w.bus), w.bus)

	reg := w.ecs.Registry()
	for _, set := range []*ecs.EntitySet{
		w.accel.Members(), w.ability.Members(), w.shoot.Members(),
		w.movement.Members(), w.collision.Members(), w.projectiles.Members(),
		w.eggCarry.Members(), w.scoring.Members(),
		w.stacking.Members(), w.eggContact.Members(), w.hits.Members(),
	} {
		reg.RegisterMembers(set)
	}

	system.AwardKills(w.bus, st, t.KillPoints)

	for _, s := range []coresys.System{
		system.NewEventDispatchSystem(w.bus),
		w.season,
		w.accel,
		w.ability,
		w.shoot,
		w.movement,
		w.collision,
		w.projectiles,
		w.eggCarry,
		w.scoring,
		system.NewDetectionSystem(st, t, w.stacking.Members(), w.stacking, w.eggContact, w.hits),
		system.NewResolveSystem(w.stacking, w.eggContact, w.hits),
		system.NewCleanupSystem(w.ecs, w.log),
	} {
		w.runner.Register(s)
	}
}

func (w *World) spawnPlayer(slot int) (ecs.EntityID, error) {
	sp, _ := w.spawns.Player(slot)
	st, t := w.stores, w.tuning
	id := w.ecs.CreateEntity()
	pos := sp.Pos()

	adds := []func() error{
		func() error { _, err := st.Position.Add(id, component.Position{V: pos}); return err },
		func() error { _, err := st.Velocity.Add(id, component.Velocity{}); return err },
		func() error {
			_, err := st.Orientation.Add(id, component.Orientation{Yaw: sp.Yaw})
			return err
		},
		func() error {
			_, err := st.Health.Add(id, component.Health{Curr: t.MaxHealth, Max: t.MaxHealth})
			return err
		},
		func() error {
			_, err := st.Jump.Add(id, component.JumpInfo{Grounded: pos[1] <= t.GroundY})
			return err
		},
		func() error {
			_, err := st.Request.Add(id, component.MovementRequest{Yaw: sp.Yaw})
			return err
		},
		func() error { _, err := st.Status.Add(id, component.StatusEffects{}); return err },
		func() error { _, err := st.Score.Add(id, component.Score{}); return err },
		func() error {
			_, err := st.Slot.Add(id, component.PlayerSlot{Index: slot, Spawn: pos, SpawnYaw: sp.Yaw})
			return err
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			return 0, err
		}
	}

	for _, r := range []interface{ Register(ecs.EntityID) error }{
		w.accel, w.ability, w.shoot, w.movement, w.collision,
		w.stacking, w.eggContact, w.hits,
	} {
		if err := r.Register(id); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (w *World) spawnEgg() (ecs.EntityID, error) {
	st := w.stores
	id := w.ecs.CreateEntity()
	if _, err := st.Position.Add(id, component.Position{V: w.spawns.Egg()}); err != nil {
		return 0, err
	}
	// Start the cooldown clock in the past so the first pickup is allowed.
	cooldown := time.Duration(w.tuning.EggCooldownSeconds) * time.Second
	if _, err := st.Egg.Add(id, component.EggInfo{LastTransfer: -cooldown}); err != nil {
		return 0, err
	}
	for _, r := range []interface{ Register(ecs.EntityID) error }{
		w.eggCarry, w.scoring, w.eggContact,
	} {
		if err := r.Register(id); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// SpawnProjectile creates a live projectile. It implements system.Spawner.
func (w *World) SpawnProjectile(owner ecs.EntityID, origin, velocity mgl32.Vec3) (ecs.EntityID, error) {
	st := w.stores
	id := w.ecs.CreateEntity()
	if _, err := st.Position.Add(id, component.Position{V: origin}); err != nil {
		return 0, err
	}
	if _, err := st.Velocity.Add(id, component.Velocity{V: velocity}); err != nil {
		return 0, err
	}
	proj := component.Projectile{Owner: owner, Origin: origin, Remaining: w.tuning.ProjectileTTL}
	if _, err := st.Projectile.Add(id, proj); err != nil {
		return 0, err
	}
	for _, r := range []interface{ Register(ecs.EntityID) error }{
		w.movement, w.projectiles, w.hits,
	} {
		if err := r.Register(id); err != nil {
			w.ecs.MarkForDestruction(id)
			return 0, fmt.Errorf("register projectile: %w", err)
		}
	}
	return id, nil
}

// Register adds an outside system, e.g. network input and output. The
// runner orders it by phase.
func (w *World) Register(s coresys.System) {
	w.runner.Register(s)
}

// Tick advances simulated time by dt and runs one full tick.
func (w *World) Tick(dt time.Duration) {
	w.runner.Tick(dt)
}

func (w *World) Clock() *coresys.Clock     { return w.clock }
func (w *World) Bus() *event.Bus           { return w.bus }
func (w *World) Stores() *component.Stores { return w.stores }
func (w *World) Entities() *ecs.World      { return w.ecs }
func (w *World) Tuning() *rules.Tuning     { return w.tuning }
func (w *World) Season() system.Season     { return w.season.Current() }
func (w *World) Egg() ecs.EntityID         { return w.egg }
func (w *World) Player(slot int) ecs.EntityID {
	if slot < 0 || slot >= packet.MaxPlayers {
		return 0
	}
	return w.players[slot]
}
