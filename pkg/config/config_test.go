package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-client/pkg/config"
)

func TestBaseURLForHost(t *testing.T) {
	t.Run("localhost gets the dev server", func(t *testing.T) {
		assert.Equal(t, config.LocalAPIBase, config.BaseURLForHost("localhost"))
		assert.Equal(t, config.LocalAPIBase, config.BaseURLForHost("127.0.0.1"))
	})

	t.Run("any other host gets production", func(t *testing.T) {
		assert.Equal(t, config.ProductionAPIBase, config.BaseURLForHost("medconnect.example.com"))
		assert.Equal(t, config.ProductionAPIBase, config.BaseURLForHost(""))
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("MEDCONNECT_SESSION_DIR", t.TempDir())

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, config.LocalAPIBase, cfg.API.BaseURL)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "medconnect-client", cfg.OTEL.ServiceName)
		assert.False(t, cfg.OTEL.Enabled)
	})

	t.Run("explicit base URL override wins", func(t *testing.T) {
		t.Setenv("MEDCONNECT_SESSION_DIR", t.TempDir())
		t.Setenv("MEDCONNECT_API_BASE", "http://backend.test:9000")
		t.Setenv("MEDCONNECT_HOST", "medconnect.example.com")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "http://backend.test:9000", cfg.API.BaseURL)
	})

	t.Run("non-local host resolves to production", func(t *testing.T) {
		t.Setenv("MEDCONNECT_SESSION_DIR", t.TempDir())
		t.Setenv("MEDCONNECT_HOST", "app.medconnect.io")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, config.ProductionAPIBase, cfg.API.BaseURL)
	})
}
