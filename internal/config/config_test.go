package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_FromFile(t *testing.T) {
	// Given: a config file selecting redis and a dark default theme
	path := writeConfig(t, `
log-level: debug
http-port: "8081"
storage: redis
session-ttl: 30m
default-theme: dark
redis:
  host: cache
  port: "6380"
`)

	// When: loading it
	conf, err := Load(path)

	// Then: every field is read
	require.NoError(t, err)
	assert.Equal(t, "8081", conf.HTTPPort)
	assert.Equal(t, StorageRedis, conf.Storage)
	assert.Equal(t, 30*time.Minute, conf.SessionTTL)
	assert.Equal(t, "dark", conf.DefaultTheme)
	assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	assert.Equal(t, slog.LevelDebug, conf.SlogLevel())
}

func TestLoad_Defaults(t *testing.T) {
	// Given: an empty config file
	path := writeConfig(t, "{}\n")

	// When: loading it
	conf, err := Load(path)

	// Then: defaults apply
	require.NoError(t, err)
	assert.Equal(t, "9090", conf.HTTPPort)
	assert.Equal(t, StorageMemory, conf.Storage)
	assert.Equal(t, time.Hour, conf.SessionTTL)
	assert.Equal(t, "light", conf.DefaultTheme)
	assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	assert.Equal(t, slog.LevelInfo, conf.SlogLevel())
}

func TestLoad_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("DEFAULT_THEME", "dark")

	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

	require.NoError(t, err)
	assert.Equal(t, "7070", conf.HTTPPort)
	assert.Equal(t, "dark", conf.DefaultTheme)
}

func TestLoad_UnknownStorage(t *testing.T) {
	path := writeConfig(t, "storage: etcd\n")

	_, err := Load(path)

	require.ErrorIs(t, err, ErrUnknownStorage)
	assert.Panics(t, func() { MustLoad(path) })
}
