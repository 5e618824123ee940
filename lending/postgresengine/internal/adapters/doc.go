// Package adapters provide database adapter implementations for the PostgreSQL lending store.
//
// The adapters support pgxpool.Pool, sql.DB, and sqlx.DB behind one DBAdapter interface.
// Writes run in serializable transactions on the primary database. Reads run outside of
// transactions and may be routed to a replica when the caller allows eventual consistency.
package adapters
