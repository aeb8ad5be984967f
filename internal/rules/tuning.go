package rules

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Tuning holds every gameplay constant the simulation reads. Speeds are in
// units per second, accelerations in units per second squared.
type Tuning struct {
	MoveAccel      float32 // horizontal acceleration from input on ground
	AirControl     float32 // input acceleration multiplier while airborne
	GroundFriction float32 // per-second horizontal damping on ground
	AirFriction    float32 // per-second horizontal damping in air
	WinterFriction float32 // ground friction multiplier during winter
	Gravity        float32
	FastFall       float32 // gravity multiplier while jump is released
	JumpSpeed      float32
	MaxJumps       int
	GroundY        float32

	PlayerHalfWidth float32
	PlayerHeight    float32
	EyeHeight       float32
	StackDepth      float32 // max vertical overlap still treated as landing on a head

	MaxHealth        int32
	ProjectileSpeed  float32
	ProjectileDamage int32
	ProjectileTTL    time.Duration
	ShootCooldown    time.Duration
	DashSpeed        float32
	DashCooldown     time.Duration

	EggRadius          float32
	EggCarryHeight     float32
	EggCooldownSeconds int64
	KillPoints         int32
	SeasonLength       time.Duration
}

func Default() Tuning {
	return Tuning{
		MoveAccel:      60,
		AirControl:     0.35,
		GroundFriction: 10,
		AirFriction:    1.5,
		WinterFriction: 0.25,
		Gravity:        24,
		FastFall:       1.8,
		JumpSpeed:      9,
		MaxJumps:       2,
		GroundY:        0,

		PlayerHalfWidth: 0.5,
		PlayerHeight:    1.8,
		EyeHeight:       1.6,
		StackDepth:      0.6,

		MaxHealth:        100,
		ProjectileSpeed:  40,
		ProjectileDamage: 25,
		ProjectileTTL:    1500 * time.Millisecond,
		ShootCooldown:    250 * time.Millisecond,
		DashSpeed:        14,
		DashCooldown:     2 * time.Second,

		EggRadius:          0.4,
		EggCarryHeight:     2.2,
		EggCooldownSeconds: 2,
		KillPoints:         1,
		SeasonLength:       time.Minute,
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// Apply overrides fields from a snake_case key → number map, as produced by
// a tuning script. Durations are given in seconds. Unknown keys are errors.
func (t *Tuning) Apply(values map[string]float64) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := values[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("tuning %s: not a finite number", k)
		}
		f := float32(v)
		switch k {
		case "move_accel":
			t.MoveAccel = f
		case "air_control":
			t.AirControl = f
		case "ground_friction":
			t.GroundFriction = f
		case "air_friction":
			t.AirFriction = f
		case "winter_friction":
			t.WinterFriction = f
		case "gravity":
			t.Gravity = f
		case "fast_fall":
			t.FastFall = f
		case "jump_speed":
			t.JumpSpeed = f
		case "max_jumps":
			t.MaxJumps = int(v)
		case "ground_y":
			t.GroundY = f
		case "player_half_width":
			t.PlayerHalfWidth = f
		case "player_height":
			t.PlayerHeight = f
		case "eye_height":
			t.EyeHeight = f
		case "stack_depth":
			t.StackDepth = f
		case "max_health":
			t.MaxHealth = int32(v)
		case "projectile_speed":
			t.ProjectileSpeed = f
		case "projectile_damage":
			t.ProjectileDamage = int32(v)
		case "projectile_ttl":
			t.ProjectileTTL = seconds(v)
		case "shoot_cooldown":
			t.ShootCooldown = seconds(v)
		case "dash_speed":
			t.DashSpeed = f
		case "dash_cooldown":
			t.DashCooldown = seconds(v)
		case "egg_radius":
			t.EggRadius = f
		case "egg_carry_height":
			t.EggCarryHeight = f
		case "egg_cooldown_seconds":
			t.EggCooldownSeconds = int64(v)
		case "kill_points":
			t.KillPoints = int32(v)
		case "season_length":
			t.SeasonLength = seconds(v)
		default:
			return fmt.Errorf("tuning: unknown key %q", k)
		}
	}
	return t.validate()
}

func (t *Tuning) validate() error {
	switch {
	case t.MaxJumps < 0:
		return fmt.Errorf("tuning: max_jumps must not be negative")
	case t.PlayerHalfWidth <= 0 || t.PlayerHeight <= 0:
		return fmt.Errorf("tuning: player box must have positive size")
	case t.MaxHealth <= 0:
		return fmt.Errorf("tuning: max_health must be positive")
	case t.SeasonLength <= 0:
		return fmt.Errorf("tuning: season_length must be positive")
	case t.EggCooldownSeconds < 0:
		return fmt.Errorf("tuning: egg_cooldown_seconds must not be negative")
	}
	return nil
}
