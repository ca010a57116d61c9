// Package config loads application configuration from environment variables
// into plain Go structs.
//
// It combines github.com/joho/godotenv (optional .env files for local
// development) with github.com/caarlos0/env/v11 (struct population via `env`
// field tags) behind a tiny generic API:
//
//	type ServiceConfig struct {
//	    Name     string        `env:"SERVICE_NAME" envDefault:"lending"`
//	    LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
//	    Timeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg ServiceConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// Load reads the default .env file once per process (missing files are fine),
// then parses the process environment into the given struct. MustLoad panics
// on failure and is meant for configuration the service cannot start without.
//
// Errors are sentinel values comparable with errors.Is: ErrNilConfig and
// ErrParseFailed.
package config
