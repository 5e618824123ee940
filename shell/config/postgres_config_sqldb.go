package config

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

const (
	sqlMaxOpenConnections = 20
	sqlMaxIdleConnections = 10
	sqlMaxConnLifetime    = time.Hour
	sqlMaxConnIdleTime    = time.Minute * 5
)

// PostgresSQLDB opens a *sql.DB on lib/pq for the DSN and pings it.
func PostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	configureSQLPool(db)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func configureSQLPool(db *sql.DB) {
	db.SetMaxOpenConns(sqlMaxOpenConnections)
	db.SetMaxIdleConns(sqlMaxIdleConnections)
	db.SetConnMaxLifetime(sqlMaxConnLifetime)
	db.SetConnMaxIdleTime(sqlMaxConnIdleTime)
}
