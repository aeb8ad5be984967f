package component

import "github.com/eggchase/server/internal/core/ecs"

// Stores holds a typed pointer to every component store. Built once by the
// world; systems and handlers keep the pointers for the process lifetime.
type Stores struct {
	Position    *ecs.ComponentStore[Position]
	Velocity    *ecs.ComponentStore[Velocity]
	Orientation *ecs.ComponentStore[Orientation]
	Health      *ecs.ComponentStore[Health]
	Jump        *ecs.ComponentStore[JumpInfo]
	Request     *ecs.ComponentStore[MovementRequest]
	Status      *ecs.ComponentStore[StatusEffects]
	Egg         *ecs.ComponentStore[EggInfo]
	Projectile  *ecs.ComponentStore[Projectile]
	Score       *ecs.ComponentStore[Score]
	Slot        *ecs.ComponentStore[PlayerSlot]
	Client      *ecs.ComponentStore[ClientRef]
}

func NewStores() *Stores {
	return &Stores{
		Position:    ecs.NewComponentStore[Position]("position"),
		Velocity:    ecs.NewComponentStore[Velocity]("velocity"),
		Orientation: ecs.NewComponentStore[Orientation]("orientation"),
		Health:      ecs.NewComponentStore[Health]("health"),
		Jump:        ecs.NewComponentStore[JumpInfo]("jump"),
		Request:     ecs.NewComponentStore[MovementRequest]("request"),
		Status:      ecs.NewComponentStore[StatusEffects]("status"),
		Egg:         ecs.NewComponentStore[EggInfo]("egg"),
		Projectile:  ecs.NewComponentStore[Projectile]("projectile"),
		Score:       ecs.NewComponentStore[Score]("score"),
		Slot:        ecs.NewComponentStore[PlayerSlot]("slot"),
		Client:      ecs.NewComponentStore[ClientRef]("client"),
	}
}

// RegisterAll binds every store to its type id in reg.
func (s *Stores) RegisterAll(reg *ecs.Registry) error {
	bind := []struct {
		t     ecs.ComponentType
		store ecs.Removable
	}{
		{TypePosition, s.Position},
		{TypeVelocity, s.Velocity},
		{TypeOrientation, s.Orientation},
		{TypeHealth, s.Health},
		{TypeJumpInfo, s.Jump},
		{TypeMovementRequest, s.Request},
		{TypeStatusEffects, s.Status},
		{TypeEggInfo, s.Egg},
		{TypeProjectile, s.Projectile},
		{TypeScore, s.Score},
		{TypePlayerSlot, s.Slot},
		{TypeClientRef, s.Client},
	}
	for _, b := range bind {
		if err := reg.RegisterStore(b.t, b.store); err != nil {
			return err
		}
	}
	return nil
}
