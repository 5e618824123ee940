// Package postgreswrapper runs the lending integration tests against the driver
// chosen by the ADAPTER_TYPE environment variable (pgx.pool, sql.db, sqlx.db).
//
// The first wrapper created in a test binary applies the goose migrations.
//
// Usage:
//
//	wrapper := CreateWrapperWithTestConfig(t)
//	defer wrapper.Close()
//	CleanUp(t, wrapper)
//
//	store := wrapper.GetStore()
package postgreswrapper
