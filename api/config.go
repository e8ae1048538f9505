package api

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/morikuni/failure/v2"
)

const (
	// EnvAPIKey is the environment variable holding the Raysurfer API key
	EnvAPIKey = "RAYSURFER_API_KEY"
	// DefaultBaseURL is the production Raysurfer endpoint
	DefaultBaseURL = "https://api.raysurfer.com"
)

// Config holds the client configuration read from the environment.
type Config struct {
	APIKey  string        `env:"RAYSURFER_API_KEY"`
	BaseURL string        `env:"RAYSURFER_BASE_URL" envDefault:"https://api.raysurfer.com"`
	Timeout time.Duration `env:"RAYSURFER_TIMEOUT" envDefault:"30s"`
	Debug   bool          `env:"RAYSURFER_DEBUG"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

// LoadConfigFrom reads the configuration from the given variables instead
// of the process environment.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environ})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, failure.Wrap(err,
			failure.Message("Invalid RAYSURFER_* environment configuration"),
		)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// Credential returns the API key, or ErrMissingCredential when it is unset
// or blank.
func (c Config) Credential() (string, error) {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return "", failure.New(ErrMissingCredential,
			failure.Message(EnvAPIKey+" environment variable is not set. Set it to your Raysurfer API key before running commands."),
		)
	}
	return key, nil
}
