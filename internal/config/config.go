// Package config defines job configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults.
//   - Load layers defaults, an optional YAML file, a .env file and the process
//     environment, then validates the result.
//   - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Env selects log encoding and similar runtime defaults.
	Env string `koanf:"env" validate:"required,oneof=development production"`

	// Timezone is the institution's IANA zone used to resolve "today".
	Timezone string `koanf:"timezone" validate:"required,timezone"`

	// DBDriver selects the SQL driver: postgres or sqlite.
	DBDriver string `koanf:"db_driver" validate:"required,oneof=postgres sqlite"`

	// DatabaseURL is the driver-specific DSN.
	DatabaseURL string `koanf:"database_url" validate:"required"`

	// DBMaxOpenConns bounds the pool; the builder issues its fetches concurrently.
	DBMaxOpenConns int `koanf:"db_max_open_conns" validate:"gte=1"`

	// Blob storage (S3 compatible) where the snapshot is published.
	BlobEndpoint   string `koanf:"blob_endpoint"`
	BlobAccessKey  string `koanf:"blob_access_key"`
	BlobSecretKey  string `koanf:"blob_secret_key"`
	BlobUseSSL     bool   `koanf:"blob_use_ssl"`
	BlobBucket     string `koanf:"blob_bucket" validate:"required"`
	BlobObjectName string `koanf:"blob_object_name" validate:"required"`

	// PushgatewayURL receives run metrics when set.
	PushgatewayURL string `koanf:"pushgateway_url" validate:"omitempty,url"`

	// MetricsJobName is the Pushgateway job label.
	MetricsJobName string `koanf:"metrics_job_name" validate:"required"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Env:            "development",
		Timezone:       "America/Lima",
		DBDriver:       "postgres",
		DatabaseURL:    "postgres://localhost:5432/asistencia?sslmode=disable",
		DBMaxOpenConns: 10,
		BlobUseSSL:     true,
		BlobBucket:     "asistencia",
		BlobObjectName: "datos-asistencia-hoy-ie20935.json",
		MetricsJobName: "asistencia_daily_snapshot",
	}
}
