package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/eggchase/server/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const defaultPingTimeout = 5 * time.Second

// DB is the match record store's connection pool. Match rows are written by
// a single background saver, so no connections are kept warm between saves.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// PoolConfig turns the database section into a pgx pool config. The DSN may
// carry its own pool_* parameters; the config file overrides them.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	poolCfg.MinConns = 0
	if cfg.ConnMaxLifetime.Duration > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime.Duration
	}
	if cfg.ConnectTimeout.Duration > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout.Duration
	}
	if cfg.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}
	return poolCfg, nil
}

// NewDB opens the pool and checks the server is reachable within the
// connect timeout.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	timeout := poolCfg.ConnConfig.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	log.Info("match store connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}
