package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COUNTDOWN_ADDR", ":9090")
	t.Setenv("COUNTDOWN_SUICIDE_TIMEOUT", "30")
	t.Setenv("COUNTDOWN_STORAGE_DRIVER", DriverPostgres)
	t.Setenv("COUNTDOWN_DATABASE_URL", "postgres://localhost/countdown")
	t.Setenv("COUNTDOWN_SNAPSHOT_INTERVAL", "1m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30, cfg.SuicideTimeoutSeconds)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, time.Minute, cfg.SnapshotInterval)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("non numeric timeout", func(t *testing.T) {
		t.Setenv("COUNTDOWN_SUICIDE_TIMEOUT", "soon")
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("zero timeout", func(t *testing.T) {
		t.Setenv("COUNTDOWN_SUICIDE_TIMEOUT", "0")
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.StorageDriver = "mongo"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = Default()
	cfg.StorageDriver = DriverPostgres
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "postgres without url")

	cfg.DatabaseURL = "postgres://localhost/countdown"
	assert.NoError(t, cfg.Validate())
}
