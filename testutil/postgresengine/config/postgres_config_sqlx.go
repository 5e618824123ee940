package config

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	shellconfig "github.com/AntonStoeckl/library-lending-go/shell/config"
)

// PostgresSQLXTestConfig creates a connected *sqlx.DB for the test database.
func PostgresSQLXTestConfig() *sqlx.DB {
	db, err := shellconfig.PostgresSQLX(context.Background(), PostgresTestDSN())
	if err != nil {
		log.Fatal("Failed to connect to the test database, error: ", err)
	}

	return db
}
