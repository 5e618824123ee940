// Package config opens the test database for the lending integration tests.
//
// The three factories return connected pools for the adapters the store supports
// (pgx.Pool, sql.DB, sqlx.DB). They all point at the database named by TEST_DATABASE_DSN,
// or at the local docker database when the variable is not set.
package config
