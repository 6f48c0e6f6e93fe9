package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp isolates the test from any .env in the package directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATA_DIR", "/srv/snip")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/snip", cfg.DataDir)
	assert.Equal(t, filepath.Join("/srv/snip", "clips"), cfg.StorageDir)
	assert.Equal(t, filepath.Join("/srv/snip", "work"), cfg.WorkDir)
	assert.Equal(t, RegistrySQLite, cfg.Registry)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 180*time.Second, cfg.MaxClipDuration)
	assert.Equal(t, 24*time.Hour, cfg.RetentionMaxAge)
	assert.Equal(t, int64(10_000_000_000), cfg.RetentionMaxBytes)
	assert.Equal(t, 720, cfg.FallbackCapHeight)
	assert.True(t, cfg.FallbackAllowAny)
	assert.True(t, cfg.VerifyChecksum)
	assert.Equal(t, 7, cfg.LookbackDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("WORKERS", "6")
	t.Setenv("RETENTION_MAX_SIZE", "512MiB")
	t.Setenv("ENCODE_TIMEOUT", "90s")
	t.Setenv("DELETE_AFTER_FETCH", "true")
	t.Setenv("REGISTRY", "JSONFILE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, int64(512*1024*1024), cfg.RetentionMaxBytes)
	assert.Equal(t, 90*time.Second, cfg.EncodeTimeout)
	assert.True(t, cfg.DeleteAfterFetch)
	assert.Equal(t, RegistryJSONFile, cfg.Registry)
}

func TestLoadFile_YAMLWithEnvPrecedence(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "snip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /var/lib/snip
WORKERS: 3
LOOKBACK_DAYS: 2
FALLBACK_ALLOW_ANY: false
SWEEP_INTERVAL: 5m
`), 0o600))
	t.Setenv("WORKERS", "8")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/snip", cfg.DataDir)
	assert.Equal(t, 8, cfg.Workers, "environment wins over file")
	assert.Equal(t, 2, cfg.LookbackDays)
	assert.False(t, cfg.FallbackAllowAny)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	// register a restore, then unset so godotenv treats the key as absent
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "bad int", key: "WORKERS", val: "many", want: "invalid WORKERS"},
		{name: "zero workers", key: "WORKERS", val: "0", want: "WORKERS must be positive"},
		{name: "bad duration", key: "ENCODE_TIMEOUT", val: "soon", want: "invalid ENCODE_TIMEOUT"},
		{name: "bad size", key: "RETENTION_MAX_SIZE", val: "lots", want: "invalid RETENTION_MAX_SIZE"},
		{name: "unknown registry", key: "REGISTRY", val: "redis", want: "REGISTRY must be"},
		{name: "heartbeat too slow", key: "HEARTBEAT_INTERVAL", val: "5m", want: "must be shorter than STALE_AFTER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.val)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
