package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytechlib/lending/pkg/config"
)

type testConfig struct {
	Name    string        `env:"TEST_SERVICE_NAME" envDefault:"lending"`
	Port    int           `env:"TEST_SERVICE_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_SERVICE_TIMEOUT" envDefault:"15s"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied when env is empty", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "lending", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
	})

	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("TEST_SERVICE_NAME", "ledger")
		t.Setenv("TEST_SERVICE_PORT", "9090")
		t.Setenv("TEST_SERVICE_TIMEOUT", "1m")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "ledger", cfg.Name)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, time.Minute, cfg.Timeout)
	})

	t.Run("unparsable value fails", func(t *testing.T) {
		t.Setenv("TEST_SERVICE_PORT", "not-a-port")

		var cfg testConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrParseFailed))
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrNilConfig))
	})
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/does-not-exist.env")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrEnvFileLoadFailed))
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	t.Setenv("TEST_SERVICE_PORT", "boom")

	var cfg testConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}
