// Package config loads the service configuration and builds everything that depends on it:
// database connections for the three supported drivers, the lending store, the process logger,
// and the OpenTelemetry providers.
//
// Configuration comes from environment variables. Values from .env and .env.local are loaded first,
// but never override variables that are already set in the environment.
package config
