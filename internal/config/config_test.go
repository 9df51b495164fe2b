package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goodSecret = strings.Repeat("s", MinSessionSecretLen)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": goodSecret,
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "4069", cfg.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "cinepedia_session", cfg.Session.CookieName)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Activity.URL)
	assert.Equal(t, "logs", cfg.Activity.LogDir)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Session.Secure)
}

func TestLoadFrom_MissingSecretFailsFast(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadFrom_ShortSecretRejected(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "short",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least")
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": goodSecret,
		"APP_ENV":        "production",
		"DB_DRIVER":      "sqlite3",
		"DB_PATH":        "/tmp/x.db",
		"SESSION_TTL":    "2h",
		"BCRYPT_COST":    "12",
		"REDIS_ADDR":     "cache:6379",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Session.Secure, "production forces Secure cookies")
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.DB.Path)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": goodSecret,
		"DB_DRIVER":      "postgres",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestNewRedisClient_DisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient(RedisConfig{}))
}
