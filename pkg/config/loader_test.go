package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultmarkets/onboarding/pkg/config"
)

type serverConfig struct {
	Addr    string        `env:"ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Secret  string        `env:"SECRET,required"`
}

type validatedConfig struct {
	Min int `env:"MIN" envDefault:"1"`
	Max int `env:"MAX" envDefault:"10"`
}

func (c *validatedConfig) Validate() error {
	if c.Min > c.Max {
		return errors.New("min exceeds max")
	}
	return nil
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults and values", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[serverConfig](config.WithEnvironment(map[string]string{
			"SECRET":  "s3cr3t",
			"TIMEOUT": "30s",
		}))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "s3cr3t", cfg.Secret)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[serverConfig](config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[serverConfig](
			config.WithPrefix("GW_"),
			config.WithEnvironment(map[string]string{"GW_SECRET": "x", "GW_ADDR": ":9000"}),
		)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Addr)
	})

	t.Run("validator", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[validatedConfig](config.WithEnvironment(map[string]string{"MIN": "20"}))
		require.ErrorIs(t, err, config.ErrInvalidConfig)

		cfg, err := config.Load[validatedConfig](config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Max)
	})
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("SECRET", "from-env")

	cfg, err := config.Load[serverConfig](config.WithEnvFiles("testdata/does-not-exist.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Secret)
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		config.MustLoad[serverConfig](config.WithEnvironment(map[string]string{}))
	})
}
