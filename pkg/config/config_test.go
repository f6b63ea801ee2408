package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canvasdoc/pkg/config"
	"github.com/aretw0/canvasdoc/pkg/document"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canvasdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadWithEnv("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, document.SchemaVersion, cfg.SchemaVersion)
	assert.Equal(t, config.StoreFile, cfg.Store.Kind)

	key, err := cfg.Key()
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
generator:
  name: studio-export
  version: 2.1.0
log_level: debug
store:
  kind: redis
  redis:
    addr: cache:6379
    db: 2
    ttl: 90s
redact:
  - token
  - "(?i)password"
disabled_handlers: [messages]
`)

	cfg, err := config.LoadWithEnv(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "studio-export", cfg.Generator.Name)
	assert.Equal(t, "2.1.0", cfg.Generator.Version)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Store.Redis.TTL)
	assert.Equal(t, "canvasdoc:doc:", cfg.Store.Redis.Prefix, "unset keys keep their defaults")
	assert.Equal(t, []string{"token", "(?i)password"}, cfg.Redact)
	assert.Equal(t, []string{"messages"}, cfg.DisabledHandlers)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nstore:\n  kind: file\n")
	key := strings.Repeat("ab", 32)

	cfg, err := config.LoadWithEnv(path, env(map[string]string{
		"CANVASDOC_LOG_LEVEL":         "warn",
		"CANVASDOC_STORE_KIND":        "redis",
		"CANVASDOC_REDIS_DB":          "5",
		"CANVASDOC_REDIS_TTL":         "1m",
		"CANVASDOC_ENCRYPTION_KEY":    key,
		"CANVASDOC_DISABLED_HANDLERS": "messages,script",
		"CANVASDOC_METRICS_NAMESPACE": "studio",
		"CANVASDOC_SCHEMA_VERSION":    "1.1",
	}))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, config.StoreRedis, cfg.Store.Kind)
	assert.Equal(t, 5, cfg.Store.Redis.DB)
	assert.Equal(t, time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, []string{"messages", "script"}, cfg.DisabledHandlers)
	assert.Equal(t, "studio", cfg.Metrics.Namespace)
	assert.Equal(t, "1.1", cfg.SchemaVersion)

	k, err := cfg.Key()
	require.NoError(t, err)
	assert.Len(t, k, 32)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"unknown key", "stroe:\n  kind: file\n", nil, "stroe"},
		{"bad store", "store:\n  kind: s3\n", nil, `unknown store kind "s3"`},
		{"bad level", "log_level: loud\n", nil, "unknown log level"},
		{"bad format", "store:\n  format: toml\n", nil, "toml"},
		{"short key", "", map[string]string{"CANVASDOC_ENCRYPTION_KEY": "abcd"}, "32 bytes"},
		{"non-hex key", "encryption_key: zz\n", nil, "encryption key"},
		{"bad pattern", "redact: ['(']\n", nil, "redact pattern"},
		{"bad ttl", "store:\n  redis:\n    ttl: soon\n", nil, "ttl"},
		{"empty schema", "schema_version: \"\"\n", nil, "schema_version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadWithEnv(writeConfig(t, tt.body), env(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := config.LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"), env(nil))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
