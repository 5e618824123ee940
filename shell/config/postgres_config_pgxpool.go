package config

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgxMaxConnections    = int32(20)
	pgxMinConnections    = int32(2)
	pgxMaxConnLifetime   = time.Hour
	pgxMaxConnIdleTime   = time.Minute * 5
	pgxHealthCheckPeriod = time.Minute
	pgxConnectTimeout    = time.Second * 5
)

// PostgresPGXPoolConfig creates a tuned pgxpool.Config for the DSN.
func PostgresPGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	dbConfig.MaxConns = pgxMaxConnections
	dbConfig.MinConns = pgxMinConnections
	dbConfig.MaxConnLifetime = pgxMaxConnLifetime
	dbConfig.MaxConnIdleTime = pgxMaxConnIdleTime
	dbConfig.HealthCheckPeriod = pgxHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = pgxConnectTimeout

	return dbConfig, nil
}

// PostgresPGXPool opens a pgx pool for the DSN and pings it.
func PostgresPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dbConfig, err := PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
