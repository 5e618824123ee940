package config

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	shellconfig "github.com/AntonStoeckl/library-lending-go/shell/config"
)

// PostgresPGXPoolTestConfig creates a connected pgxpool.Pool for the test database.
func PostgresPGXPoolTestConfig() *pgxpool.Pool {
	pool, err := shellconfig.PostgresPGXPool(context.Background(), PostgresTestDSN())
	if err != nil {
		log.Fatal("Failed to connect to the test database, error: ", err)
	}

	return pool
}
