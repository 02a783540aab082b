package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults when the file is missing", func(t *testing.T) {
		c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", c.Server.Addr)
		assert.Equal(t, []string{"*"}, c.Server.AllowedOrigins)
		assert.Equal(t, int64(5<<20), c.Uploads.MaxBytes)
		assert.Equal(t, 24*time.Hour, c.Auth.TokenTTL)
		assert.Equal(t, 150.0, c.Delivery.FallbackInside)
		assert.Equal(t, 200.0, c.Delivery.FallbackOutside)
		assert.Equal(t, 40, c.Pagination.HomePageSize)
		assert.Equal(t, uint(3), c.Invoice.LaunchAttempts)
		assert.Equal(t, "info", c.Log.Level)
	})

	t.Run("should read the file and let env override it", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feriwala.yaml")
		yaml := "server:\n  addr: \":9090\"\nshop:\n  name: Test Shop\nauth:\n  token_ttl: 2h\n"
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
		t.Setenv("FERIWALA_SHOP_PHONE", "01811111111")

		c, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", c.Server.Addr)
		assert.Equal(t, "Test Shop", c.Shop.Name)
		assert.Equal(t, "01811111111", c.Shop.Phone)
		assert.Equal(t, 2*time.Hour, c.Auth.TokenTTL)
		assert.Equal(t, c, GetConfig())
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feriwala.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shop:\n  name: Old\n"), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)

	c.Shop.Name = "New Name"
	c.Shop.WhatsApp = "01900000000"
	require.NoError(t, SaveConfig(c))
	assert.Equal(t, "New Name", GetConfig().Shop.Name)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.Shop.Name)
	assert.Equal(t, "01900000000", reloaded.Shop.WhatsApp)
}

func TestSaveConfigKeepsEnvOutOfFile(t *testing.T) {
	t.Setenv("FERIWALA_AUTH_JWT_SECRET", "from-env-only")
	path := filepath.Join(t.TempDir(), "feriwala.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env-only", c.Auth.JWTSecret)

	c.Shop.Name = "Env Test"
	require.NoError(t, SaveConfig(c))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "from-env-only")
	assert.NotContains(t, string(raw), "pagination")
	assert.Contains(t, string(raw), "Env Test")
	assert.Contains(t, string(raw), ":9090")
}

func TestUseNormalizes(t *testing.T) {
	Use(Config{})
	got := GetConfig()
	assert.Equal(t, 12, got.Pagination.RelatedPageSize)
	assert.Equal(t, 24*time.Hour, got.Auth.TokenTTL)
}
