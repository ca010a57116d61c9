package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// defaultEnvOnce guards loading of the default .env file so repeated Load
// calls across packages do not re-read the filesystem.
var defaultEnvOnce sync.Once

// LoadEnv loads one or more explicit .env files into the process environment.
// Unlike the implicit default file, an explicitly named file that cannot be
// read is an error.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrEnvFileLoadFailed, err)
	}
	return nil
}

// Load populates cfg from the process environment using `env` struct tags.
// The default .env file in the working directory is loaded once per process
// beforehand; its absence is not an error.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	defaultEnvOnce.Do(func() {
		// A missing .env is expected outside local development.
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseFailed, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot run without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load %T: %v", *cfg, err))
	}
}
