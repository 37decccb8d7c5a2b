package config

import (
	"github.com/caarlos0/env/v11"

	"traffic-controller/internal/config/configs"
)

// Config aggregates every configuration section. It is populated from
// environment variables by caarlos0/env; each nested section reads the
// variables carrying its envPrefix. Defaults live on the section types in
// the configs package.
type Config struct {
	// Env names the deployment (prod, dev, ...). It is attached to every
	// log line.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP is the server for redirects, manual edits, sync state and
	// metrics (HTTP_*).
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures slog (LOG_*).
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql is the PostgreSQL pool and migrations (PSQL_*).
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Controller drives the reconciliation ticker (CONTROLLER_*).
	Controller configs.Controller `envPrefix:"CONTROLLER_"`

	// Platform is the external ad platform client (PLATFORM_*).
	Platform configs.Platform `envPrefix:"PLATFORM_"`
}

// Load reads the configuration from the environment, applying defaults for
// unset variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
