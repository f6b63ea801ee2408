// Package config loads canvasdoc settings from a YAML file and CANVASDOC_*
// environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/canvasdoc/internal/logging"
	"github.com/aretw0/canvasdoc/pkg/document"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "CANVASDOC_"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds every setting the library and CLI read.
type Config struct {
	Generator        Generator `mapstructure:"generator"`
	SchemaVersion    string    `mapstructure:"schema_version"`
	LogLevel         string    `mapstructure:"log_level"`
	Store            Store     `mapstructure:"store"`
	EncryptionKey    string    `mapstructure:"encryption_key"` // hex, 32 bytes
	Redact           []string  `mapstructure:"redact"`
	DisabledHandlers []string  `mapstructure:"disabled_handlers"`
	Metrics          Metrics   `mapstructure:"metrics"`
}

// Generator names the tool stamped into produced documents.
type Generator struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Store selects and configures the document store.
type Store struct {
	Kind   string `mapstructure:"kind"`
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
	Redis  Redis  `mapstructure:"redis"`
}

// Redis configures the redis store.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Metrics configures the Prometheus collectors.
type Metrics struct {
	Namespace string `mapstructure:"namespace"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Generator:     Generator{Name: "canvasdoc"},
		SchemaVersion: document.SchemaVersion,
		LogLevel:      "info",
		Store: Store{
			Kind:   StoreFile,
			Dir:    ".canvasdoc/documents",
			Format: string(document.FormatJSON),
			Redis:  Redis{Addr: "localhost:6379", Prefix: "canvasdoc:doc:"},
		},
		Metrics: Metrics{Namespace: "canvasdoc"},
	}
}

// envKeys maps environment variables, minus EnvPrefix, to config keys.
var envKeys = map[string]string{
	"GENERATOR_NAME":    "generator.name",
	"GENERATOR_VERSION": "generator.version",
	"SCHEMA_VERSION":    "schema_version",
	"LOG_LEVEL":         "log_level",
	"STORE_KIND":        "store.kind",
	"STORE_DIR":         "store.dir",
	"STORE_FORMAT":      "store.format",
	"REDIS_ADDR":        "store.redis.addr",
	"REDIS_PASSWORD":    "store.redis.password",
	"REDIS_DB":          "store.redis.db",
	"REDIS_PREFIX":      "store.redis.prefix",
	"REDIS_TTL":         "store.redis.ttl",
	"ENCRYPTION_KEY":    "encryption_key",
	"REDACT":            "redact",
	"DISABLED_HANDLERS": "disabled_handlers",
	"METRICS_NAMESPACE": "metrics.namespace",
}

// Load reads path (optional) and applies environment overrides from the
// process environment.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for env, key := range envKeys {
		if v, ok := lookup(EnvPrefix + env); ok {
			setPath(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// setPath stores v under the nested key path, creating maps as needed.
func setPath(m map[string]any, path []string, v any) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// Validate checks values that decoding cannot.
func (c *Config) Validate() error {
	var errs []error
	if c.SchemaVersion == "" {
		errs = append(errs, errors.New("schema_version must not be empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store kind %q", c.Store.Kind))
	}
	if _, err := document.ParseFormat(c.Store.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Key(); err != nil {
		errs = append(errs, err)
	}
	for _, p := range c.Redact {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("redact pattern %q: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// Key decodes EncryptionKey. It returns nil when no key is configured.
func (c *Config) Key() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
