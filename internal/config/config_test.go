package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, int64(10), cfg.Checkout.TaxPercent)
	assert.Equal(t, "pending", cfg.Checkout.DefaultStatus)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, filepath.Join(".", "public", "uploads"), cfg.App.UploadDir())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
app:
  env: production
  root_path: /srv/storegg
database:
  host: db.internal
  port: 6543
auth:
  jwt_secret: from-file
checkout:
  tax_percent: 11
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("DATABASE_HOST", "db.override")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, int64(11), cfg.Checkout.TaxPercent)
	assert.Equal(t, "/srv/storegg/public/uploads", cfg.App.UploadDir())
	assert.Equal(t, "postgres://storegg:@db.override:6543/storegg?sslmode=disable", cfg.Database.DSN())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestValidate_TaxPercentRange(t *testing.T) {
	cfg := &Config{
		Auth:     AuthConfig{JWTSecret: "x"},
		Checkout: CheckoutConfig{TaxPercent: 101, DefaultStatus: "pending"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Checkout.TaxPercent = -1
	assert.Error(t, cfg.Validate())

	cfg.Checkout.TaxPercent = 0
	assert.NoError(t, cfg.Validate())
}
