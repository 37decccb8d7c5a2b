package configs

import "time"

// Platform configures the client for the external ad-buying platform.
type Platform struct {
	// BaseURL is the API root, e.g. https://api.platform.example.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:9090"`
	// APIToken is sent as a bearer token on every request.
	APIToken string `env:"API_TOKEN"`
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"20s"`
	// MaxAttempts bounds retries of transport errors, 429 and 5xx.
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"3"`
	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration `env:"RETRY_BACKOFF" envDefault:"500ms"`
}
