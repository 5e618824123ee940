package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Adapter types, selected with ADAPTER_TYPE.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLXDB  = "sqlx.db"
)

const (
	envEnv                 = "ENV"
	envHTTPAddr            = "HTTP_ADDR"
	envDatabaseHost        = "DATABASE_HOST"
	envDatabasePort        = "DATABASE_PORT"
	envDatabaseUsername    = "DATABASE_USERNAME"
	envDatabasePassword    = "DATABASE_PASSWORD"
	envDatabaseName        = "DATABASE_NAME"
	envDatabaseSSLMode     = "DATABASE_SSLMODE"
	envDatabaseReplicaHost = "DATABASE_REPLICA_HOST"
	envAdapterType         = "ADAPTER_TYPE"
	envLogLevel            = "LOG_LEVEL"
	envOTelEnabled         = "OTEL_ENABLED"
	envOTelTracesEndpoint  = "OTEL_TRACES_ENDPOINT"
	envOTelMetricsEndpoint = "OTEL_METRICS_ENDPOINT"
	envOTelServiceName     = "OTEL_SERVICE_NAME"
	envRateLimitRPS        = "RATE_LIMIT_RPS"
	envRetryMaxAttempts    = "RETRY_MAX_ATTEMPTS"
)

// ErrInvalidConfig is returned when an environment variable can not be parsed or the result fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete service configuration.
type Config struct {
	Env              string  `validate:"oneof=development production test"`
	HTTPAddr         string  `validate:"required"`
	AdapterType      string  `validate:"oneof=pgx.pool sql.db sqlx.db"`
	LogLevel         string  `validate:"oneof=debug info warn error"`
	RateLimitRPS     float64 `validate:"gte=0"`
	RetryMaxAttempts int     `validate:"gte=1,lte=20"`
	Database         DatabaseConfig
	OTel             OTelConfig
}

// DatabaseConfig holds the Postgres connection settings. ReplicaHost is optional,
// the replica is expected to share port, credentials, and database name with the primary.
type DatabaseConfig struct {
	Host        string `validate:"required"`
	Port        int    `validate:"gte=1,lte=65535"`
	Username    string `validate:"required"`
	Password    string
	Name        string `validate:"required"`
	SSLMode     string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	ReplicaHost string
}

// HasReplica reports whether a read replica is configured.
func (c DatabaseConfig) HasReplica() bool {
	return c.ReplicaHost != ""
}

// OTelConfig holds the OpenTelemetry exporter settings.
type OTelConfig struct {
	Enabled         bool
	TracesEndpoint  string `validate:"required_if=Enabled true"`
	MetricsEndpoint string `validate:"required_if=Enabled true"`
	ServiceName     string `validate:"required"`
}

// LookupFunc looks up an environment variable, os.LookupEnv in production.
type LookupFunc func(key string) (string, bool)

// Load reads .env files and the environment, and validates the result.
func Load() (Config, error) {
	loadEnvFiles()

	return FromLookup(os.LookupEnv)
}

func loadEnvFiles() {
	// godotenv.Load keeps variables that are already set.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// FromLookup builds and validates a Config from the given lookup, applying defaults for unset variables.
func FromLookup(lookup LookupFunc) (Config, error) {
	r := reader{lookup: lookup}

	cfg := Config{
		Env:              r.string(envEnv, "development"),
		HTTPAddr:         r.string(envHTTPAddr, ":8080"),
		AdapterType:      r.string(envAdapterType, AdapterPGXPool),
		LogLevel:         r.string(envLogLevel, "info"),
		RateLimitRPS:     r.float(envRateLimitRPS, 20),
		RetryMaxAttempts: r.int(envRetryMaxAttempts, 5),
		Database: DatabaseConfig{
			Host:        r.string(envDatabaseHost, "localhost"),
			Port:        r.int(envDatabasePort, 5432),
			Username:    r.string(envDatabaseUsername, "postgres"),
			Password:    r.string(envDatabasePassword, "postgres"),
			Name:        r.string(envDatabaseName, "library_lending"),
			SSLMode:     r.string(envDatabaseSSLMode, "disable"),
			ReplicaHost: r.string(envDatabaseReplicaHost, ""),
		},
		OTel: OTelConfig{
			Enabled:         r.bool(envOTelEnabled, false),
			TracesEndpoint:  r.string(envOTelTracesEndpoint, ""),
			MetricsEndpoint: r.string(envOTelMetricsEndpoint, ""),
			ServiceName:     r.string(envOTelServiceName, "lendingd"),
		},
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	return cfg, nil
}

// reader collects parse errors so that all broken variables are reported at once.
type reader struct {
	lookup LookupFunc
	errs   []error
}

func (r *reader) string(key, fallback string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}

	return fallback
}

func (r *reader) int(key string, fallback int) int {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}

	return parsed
}

func (r *reader) float(key string, fallback float64) float64 {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}

	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}

	return parsed
}

func (r *reader) bool(key string, fallback bool) bool {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}

	return parsed
}
