package data

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// PlayerSpawn is where a player slot starts and respawns.
type PlayerSpawn struct {
	Slot int     `yaml:"slot"`
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
	Z    float32 `yaml:"z"`
	Yaw  float32 `yaml:"yaw"`
}

type eggSpawn struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

type spawnListFile struct {
	Players []PlayerSpawn `yaml:"players"`
	Egg     eggSpawn      `yaml:"egg"`
}

// SpawnTable holds one spawn per player slot, indexed by slot, and the
// egg's starting point.
type SpawnTable struct {
	players []PlayerSpawn
	egg     mgl32.Vec3
}

func (t *SpawnTable) Player(slot int) (PlayerSpawn, bool) {
	if slot < 0 || slot >= len(t.players) {
		return PlayerSpawn{}, false
	}
	return t.players[slot], true
}

func (t *SpawnTable) Egg() mgl32.Vec3 { return t.egg }

// Count returns the number of player slots.
func (t *SpawnTable) Count() int { return len(t.players) }

func (p PlayerSpawn) Pos() mgl32.Vec3 { return mgl32.Vec3{p.X, p.Y, p.Z} }

// DefaultSpawnTable places slots on the corners of a square around the egg.
func DefaultSpawnTable(slots int) *SpawnTable {
	corners := [][2]float32{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}}
	t := &SpawnTable{players: make([]PlayerSpawn, slots)}
	for i := range t.players {
		c := corners[i%len(corners)]
		t.players[i] = PlayerSpawn{Slot: i, X: c[0], Z: c[1]}
	}
	return t
}

// LoadSpawnTable loads spawns from a YAML file. Every slot in [0, slots)
// must appear exactly once.
func LoadSpawnTable(path string, slots int) (*SpawnTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	t := &SpawnTable{
		players: make([]PlayerSpawn, slots),
		egg:     mgl32.Vec3{f.Egg.X, f.Egg.Y, f.Egg.Z},
	}
	seen := make([]bool, slots)
	for _, p := range f.Players {
		if p.Slot < 0 || p.Slot >= slots {
			return nil, fmt.Errorf("spawn_list: slot %d out of range [0,%d)", p.Slot, slots)
		}
		if seen[p.Slot] {
			return nil, fmt.Errorf("spawn_list: slot %d listed twice", p.Slot)
		}
		seen[p.Slot] = true
		t.players[p.Slot] = p
	}
	for slot, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("spawn_list: slot %d missing", slot)
		}
	}
	return t, nil
}
