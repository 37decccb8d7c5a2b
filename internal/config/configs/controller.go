package configs

import "time"

// Controller configures the campaign traffic controller loop.
type Controller struct {
	// Enabled starts the ticker together with the HTTP server.
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// Interval between two passes over all managed campaigns.
	Interval time.Duration `env:"INTERVAL" envDefault:"1m"`
	// Workers bounds how many campaigns are reconciled concurrently.
	Workers int `env:"WORKERS" envDefault:"4"`
	// PassTimeout bounds a single campaign pass, external calls included.
	PassTimeout time.Duration `env:"PASS_TIMEOUT" envDefault:"45s"`
	// LedgerDir, when set, mirrors every committed ledger change into text
	// files under this directory.
	LedgerDir string `env:"LEDGER_DIR"`
}
