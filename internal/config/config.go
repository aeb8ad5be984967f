package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Network  NetworkConfig  `toml:"network"`
	Game     GameConfig     `toml:"game"`
	Database DatabaseConfig `toml:"database"`
	Data     DataConfig     `toml:"data"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type NetworkConfig struct {
	BindAddress      string   `toml:"bind_address"`
	TickRate         Duration `toml:"tick_rate"`
	InQueueSize      int      `toml:"in_queue_size"`
	OutQueueSize     int      `toml:"out_queue_size"`
	ReadBufferSize   int      `toml:"read_buffer_size"`
	MaxBufferedBytes int      `toml:"max_buffered_bytes"`
	MaxChunksPerTick int      `toml:"max_chunks_per_tick"`
}

type GameConfig struct {
	SeasonLength       Duration `toml:"season_length"`
	EggCooldownSeconds int64    `toml:"egg_cooldown_seconds"`
	SaveInterval       Duration `toml:"save_interval"`
}

// DatabaseConfig sizes the match record store. One background writer and
// the shutdown read-back are the only clients, so the pool stays small.
type DatabaseConfig struct {
	DSN             string   `toml:"dsn"` // empty disables score persistence
	MaxConns        int      `toml:"max_conns"`
	ConnectTimeout  Duration `toml:"connect_timeout"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
	ApplicationName string   `toml:"application_name"` // shown in pg_stat_activity
}

type DataConfig struct {
	SpawnFile  string `toml:"spawn_file"`
	ScriptsDir string `toml:"scripts_dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Duration accepts TOML strings such as "33ms" or "1m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration, used when no file exists.
func Default() *Config {
	cfg := defaults()
	cfg.Server.StartTime = time.Now().Unix()
	return cfg
}

func (c *Config) validate() error {
	if c.Network.TickRate.Duration <= 0 {
		return fmt.Errorf("network.tick_rate must be positive")
	}
	if c.Network.MaxBufferedBytes < 1024 {
		return fmt.Errorf("network.max_buffered_bytes must be at least 1024")
	}
	if c.Game.SaveInterval.Duration <= 0 {
		return fmt.Errorf("game.save_interval must be positive")
	}
	if c.Database.DSN != "" && c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be at least 1")
	}
	if c.Game.EggCooldownSeconds < 0 {
		return fmt.Errorf("game.egg_cooldown_seconds must not be negative")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "eggchase",
		},
		Network: NetworkConfig{
			BindAddress:      "0.0.0.0:7777",
			TickRate:         Duration{33 * time.Millisecond},
			InQueueSize:      64,
			OutQueueSize:     128,
			ReadBufferSize:   4096,
			MaxBufferedBytes: 64 * 1024,
			MaxChunksPerTick: 32,
		},
		Game: GameConfig{
			SeasonLength:       Duration{60 * time.Second},
			EggCooldownSeconds: 2,
			SaveInterval:       Duration{time.Minute},
		},
		Database: DatabaseConfig{
			MaxConns:        2,
			ConnectTimeout:  Duration{5 * time.Second},
			ConnMaxLifetime: Duration{30 * time.Minute},
			ApplicationName: "eggchase",
		},
		Data: DataConfig{
			SpawnFile:  "data/yaml/spawn_list.yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
