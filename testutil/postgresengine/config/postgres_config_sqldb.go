package config

import (
	"context"
	"database/sql"
	"log"

	shellconfig "github.com/AntonStoeckl/library-lending-go/shell/config"
)

// PostgresSQLDBTestConfig creates a connected *sql.DB (lib/pq) for the test database.
func PostgresSQLDBTestConfig() *sql.DB {
	db, err := shellconfig.PostgresSQLDB(context.Background(), PostgresTestDSN())
	if err != nil {
		log.Fatal("Failed to connect to the test database, error: ", err)
	}

	return db
}
