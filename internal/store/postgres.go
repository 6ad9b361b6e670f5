// Package store provee el pool Postgres compartido por los servicios
// internos y el runner de migraciones embebidas.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/gymgate/internal/observability/logger"
)

// PGConfig es el tuning del pool.
type PGConfig struct {
	MaxConns        int
	ConnMaxLifetime string
}

// NewPool abre un pgxpool contra el DSN dado. El ping inicial es
// best-effort: el servicio puede arrancar aunque la DB esté caída.
func NewPool(ctx context.Context, dsn string, cfg PGConfig) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}
	if cfg.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
			pcfg.MaxConnIdleTime = d
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		logger.L().Warn("pg pool startup ping failed", logger.Err(err))
	} else {
		logger.L().Info("pg pool ready", logger.Int("max_conns", int(pcfg.MaxConns)))
	}

	return pool, nil
}
